package entities

import "errors"

// Domain errors surfaced to the API boundary. Handlers map these to HTTP
// status codes; anything else is reported as a generic server error.
var (
	// ErrUserNotFound indicates the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates the username is already registered
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken indicates the email is already registered
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login attempt
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionNotFound indicates a missing or expired session
	ErrSessionNotFound = errors.New("session not found")

	// ErrInsufficientMana indicates a spend exceeding the current balance
	ErrInsufficientMana = errors.New("insufficient mana")

	// ErrScrollNotFound indicates the referenced scroll does not exist
	ErrScrollNotFound = errors.New("scroll not found")

	// ErrInvalidKey indicates a wrong unlock key; the attempt may be retried
	ErrInvalidKey = errors.New("invalid unlock key")

	// ErrPackageNotFound indicates the referenced mana package does not exist
	ErrPackageNotFound = errors.New("mana package not found")

	// ErrDuplicatePurchase indicates a purchase with an already-recorded payment reference
	ErrDuplicatePurchase = errors.New("purchase already recorded")

	// ErrRecipeNotFound indicates the referenced crafting recipe does not exist
	ErrRecipeNotFound = errors.New("crafting recipe not found")

	// ErrMissingIngredients indicates the user lacks required ingredients
	ErrMissingIngredients = errors.New("missing crafting ingredients")

	// ErrQueueItemNotFound indicates the referenced crafting queue item does not exist
	ErrQueueItemNotFound = errors.New("crafting queue item not found")

	// ErrCraftingNotReady indicates a claim before the completion time
	ErrCraftingNotReady = errors.New("crafting not yet complete")

	// ErrCraftingAlreadyClaimed indicates a repeat claim on a finished craft
	ErrCraftingAlreadyClaimed = errors.New("crafting already claimed")

	// ErrItemNotFound indicates the referenced inventory item does not exist
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrOracleUnavailable indicates the oracle provider could not answer
	ErrOracleUnavailable = errors.New("the oracle is silent")
)

// ValidationError reports rejected client input. Handlers map it to a
// client error status instead of a server error.
type ValidationError struct {
	Message string
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}
