package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Import pipeline errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrUserNotFound = fmt.Errorf("BGG user not found")
	ErrTimeout      = fmt.Errorf("BGG is still preparing the collection")
	ErrUnavailable  = fmt.Errorf("BGG is unavailable")
	ErrDetailFetch  = fmt.Errorf("could not fetch game details")

	// Store errors
	ErrGameNotFound = fmt.Errorf("game not found")
	ErrRunNotFound  = fmt.Errorf("import run not found")
	ErrDuplicateBGG = fmt.Errorf("game already linked to this BGG id")
)
