package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Definition and builder invariants.
	ErrTypeNotSet         = errors.New("recipe type is not set")
	ErrUnknownKind        = errors.New("unknown recipe type")
	ErrInvalidName        = errors.New("invalid recipe name")
	ErrMissingField       = errors.New("missing required field")
	ErrNoIngredients      = errors.New("recipe has no ingredients")
	ErrTooManyIngredients = errors.New("too many ingredients")
	ErrPatternRequired    = errors.New("pattern is required for shaped recipes")
	ErrPatternNotAllowed  = errors.New("pattern is only valid for shaped recipes")
	ErrInvalidPattern     = errors.New("invalid pattern")
	ErrSignRequired       = errors.New("ingredient sign is not set")
	ErrDuplicateSign      = errors.New("ingredient sign is used twice")
	ErrUnknownSign        = errors.New("pattern sign has no ingredient")
	ErrUnusedSign         = errors.New("ingredient sign does not appear in pattern")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrCategoryNotAllowed = errors.New("category is not valid for this recipe type")
	ErrNotCooking         = errors.New("recipe type is not a cooking recipe")
	ErrCookingTime        = errors.New("cooking time must be positive")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidExperience  = errors.New("experience must not be negative")

	// Catalog and provider resolution.
	ErrUnknownMaterial  = errors.New("unknown material")
	ErrUnknownTag       = errors.New("unknown tag")
	ErrUnknownProvider  = errors.New("unknown or disabled provider")
	ErrInvalidItem      = errors.New("invalid item")
	ErrUnresolvedResult = errors.New("result cannot be resolved")

	// Matching.
	ErrKindMismatch = errors.New("recipe type does not fit this input")
	ErrInvalidGrid  = errors.New("invalid crafting grid")
)
