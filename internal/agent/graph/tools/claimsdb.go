package tools

import (
	"fmt"
	"sync"

	"github.com/claimpilot/server/internal/agent/model"
)

// ClaimsDB is the mock backing store the insurance tools operate on. Claims
// are created and updated by tool executions; users are seeded and read-only.
type ClaimsDB struct {
	mu     sync.Mutex
	users  map[string]model.User
	claims map[string]model.Claim
	seq    int
}

func NewClaimsDB() *ClaimsDB {
	db := &ClaimsDB{
		users:  make(map[string]model.User, len(seedUsers)),
		claims: make(map[string]model.Claim, len(seedClaims)),
	}
	for _, u := range seedUsers {
		db.users[u.ID] = u
	}
	for _, c := range seedClaims {
		db.claims[c.ID] = c
	}
	return db
}

func (db *ClaimsDB) UserByID(id string) (model.User, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	u, ok := db.users[id]
	return u, ok
}

func (db *ClaimsDB) ClaimByID(id string) (model.Claim, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	c, ok := db.claims[id]
	return c, ok
}

// UpsertClaim creates or updates a claim. A claim without an ID gets the next
// canonical one. New claims start open.
func (db *ClaimsDB) UpsertClaim(claim model.Claim) model.Claim {
	db.mu.Lock()
	defer db.mu.Unlock()

	if claim.ID == "" {
		db.seq++
		claim.ID = fmt.Sprintf("clm-%06d", db.seq)
	}
	existing, ok := db.claims[claim.ID]
	if ok {
		if claim.Description == "" {
			claim.Description = existing.Description
		}
		if claim.Amount == 0 {
			claim.Amount = existing.Amount
		}
		if claim.UserID == "" {
			claim.UserID = existing.UserID
		}
		claim.Status = existing.Status
	}
	if claim.Status == "" {
		claim.Status = model.ClaimStatusOpen
	}
	db.claims[claim.ID] = claim
	return claim
}

// SetClaimStatus transitions a claim and reports whether it existed.
func (db *ClaimsDB) SetClaimStatus(id string, status model.ClaimStatus) (model.Claim, bool) {
	db.mu.Lock()
	defer db.mu.Unlock()

	c, ok := db.claims[id]
	if !ok {
		return model.Claim{}, false
	}
	c.Status = status
	db.claims[id] = c
	return c, true
}

var seedUsers = []model.User{
	{
		ID:       "usr-001",
		Name:     "Alice Prasert",
		Email:    "alice.prasert@example.com",
		PolicyID: "pol-55001",
	},
	{
		ID:       "usr-002",
		Name:     "Ben Okafor",
		Email:    "ben.okafor@example.com",
		PolicyID: "pol-55002",
	},
	{
		ID:       "usr-003",
		Name:     "Chularat Wong",
		Email:    "chularat.wong@example.com",
		PolicyID: "pol-55003",
	},
}

var seedClaims = []model.Claim{
	{
		ID:          "clm-000123",
		UserID:      "usr-001",
		Description: "Rear-end collision on the expressway, bumper damage",
		Amount:      4200.00,
		Status:      model.ClaimStatusOpen,
	},
	{
		ID:          "clm-000124",
		UserID:      "usr-002",
		Description: "Windshield crack from road debris",
		Amount:      800.00,
		Status:      model.ClaimStatusApproved,
	},
}
