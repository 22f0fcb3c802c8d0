package tools

// Tool names advertised to the reasoner. The router's transition table is
// keyed by these.
const (
	ToolGetUserDetails        = "get_user_details"
	ToolFraudCheck            = "fraud_check"
	ToolCreateOrUpdateClaim   = "create_or_update_claim"
	ToolApprovePayment        = "approve_payment"
	ToolSendConfirmationEmail = "send_confirmation_email"
)
