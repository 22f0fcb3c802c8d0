package gates

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/claimpilot/server/internal/agent/model"
	logx "github.com/claimpilot/server/pkg/logger"
)

// Rejection reasons surfaced to the reasoner. Kept stable so the model can
// learn to repair the specific field.
const (
	ReasonClaimantMissing    = "claimant identity (user_id) is missing"
	ReasonDescriptionMissing = "incident description is missing"
	ReasonAmountMissing      = "requested amount is missing or not positive"
	ReasonClaimArgsMalformed = "claim arguments are not a JSON object"
)

// ClaimDetailGate validates and normalizes create_or_update_claim payloads
// before they reach the executor.
type ClaimDetailGate struct{}

func NewClaimDetailGate() *ClaimDetailGate {
	return &ClaimDetailGate{}
}

func (g *ClaimDetailGate) Name() string {
	return "claim-detail-gate"
}

type claimDetailArgs struct {
	ClaimID     string `json:"claim_id,omitempty"`
	UserID      string `json:"user_id"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
}

func (g *ClaimDetailGate) Check(state *model.ConversationState, action model.ProposedAction) Outcome {
	var args claimDetailArgs
	if err := json.Unmarshal(action.Arguments, &args); err != nil {
		logx.Debug().Err(err).Str("gate", g.Name()).Msg("Rejecting malformed claim payload")
		return reject(ReasonClaimArgsMalformed)
	}

	args.UserID = strings.TrimSpace(args.UserID)
	args.Description = strings.TrimSpace(args.Description)

	if args.UserID == "" {
		return reject(ReasonClaimantMissing)
	}
	if args.Description == "" {
		return reject(ReasonDescriptionMissing)
	}
	amount, ok := coerceAmount(args.Amount)
	if !ok || amount <= 0 {
		return reject(ReasonAmountMissing)
	}

	enriched := map[string]any{
		"user_id":     args.UserID,
		"description": args.Description,
		"amount":      amount,
	}
	if id := canonicalClaimID(args.ClaimID); id != "" {
		enriched["claim_id"] = id
	}

	b, err := json.Marshal(enriched)
	if err != nil {
		return reject(ReasonClaimArgsMalformed)
	}

	forwarded := action
	forwarded.Arguments = b
	return pass(forwarded)
}

// coerceAmount accepts JSON numbers plus the quoted and comma-grouped shapes
// models tend to produce.
func coerceAmount(v any) (float64, bool) {
	switch vv := v.(type) {
	case float64:
		return vv, true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(vv), ",", "")
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := vv.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

var _ Gate = (*ClaimDetailGate)(nil)
