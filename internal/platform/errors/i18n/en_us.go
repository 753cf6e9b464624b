package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeBuildingRequired          = "BUILDING_REQUIRED"
	CodeBuildingInvalid           = "BUILDING_INVALID"
	CodeUpgradeRequired           = "UPGRADE_REQUIRED"
	CodeUpgradeInvalid            = "UPGRADE_INVALID"
	CodeBuffRequired              = "BUFF_REQUIRED"
	CodeBuffInvalidTimer          = "BUFF_INVALID_TIMER"
	CodePricingInvalidConfig      = "PRICING_INVALID_CONFIG"
	CodeStateInvalid              = "STATE_INVALID"
	CodeAmountNotFinite           = "AMOUNT_NOT_FINITE"
	CodeCommandUnknown            = "COMMAND_UNKNOWN"
	CodeCommandInvalid            = "COMMAND_INVALID"
	CodeCatalogUnknownEntry       = "CATALOG_UNKNOWN_ENTRY"
	CodeSlotRequired              = "SLOT_REQUIRED"
	CodeWarpNegativeTicks         = "WARP_NEGATIVE_TICKS"
	CodeBuildingInsufficientOwned = "BUILDING_INSUFFICIENT_OWNED"
	CodePurchaseUnaffordable      = "PURCHASE_UNAFFORDABLE"
	CodeUpgradeAlreadyOwned       = "UPGRADE_ALREADY_OWNED"
	CodeUpgradeNotPurchasable     = "UPGRADE_NOT_PURCHASABLE"
	CodeClickingRateNegative      = "CLICKING_RATE_NEGATIVE"
	CodeBankNegative              = "BANK_NEGATIVE"
	CodeBuffWarpNegative          = "BUFF_WARP_NEGATIVE"
	CodeScenarioExpectationFailed = "SCENARIO_EXPECTATION_FAILED"
	CodeNotFound                  = "NOT_FOUND"
	CodeSaveVersionUnsupported    = "SAVE_VERSION_UNSUPPORTED"
	CodeSaveChecksumMismatch      = "SAVE_CHECKSUM_MISMATCH"
	CodeSaveSignatureMismatch     = "SAVE_SIGNATURE_MISMATCH"
)

var enUSMessages = map[Code]string{
	CodeBuildingRequired:          "A building is required.",
	CodeBuildingInvalid:           "{{if .Building}}Building {{.Building}}{{else}}A building{{end}} has an invalid id, base rate or price.",
	CodeUpgradeRequired:           "An upgrade is required.",
	CodeUpgradeInvalid:            "{{if .Upgrade}}Upgrade {{.Upgrade}}{{else}}An upgrade{{end}} has an invalid id or price.",
	CodeBuffRequired:              "A buff is required.",
	CodeBuffInvalidTimer:          "Buff timers must satisfy 0 < time left <= total.",
	CodePricingInvalidConfig:      "Pricing needs a growth factor above 1 and a refund factor between 0 and 1.",
	CodeStateInvalid:              "The game state is not valid: {{.Field}}.",
	CodeAmountNotFinite:           "The amount must be a finite number.",
	CodeCommandUnknown:            "Unknown command.",
	CodeCommandInvalid:            "The command is malformed.",
	CodeCatalogUnknownEntry:       "Unknown {{.Kind}} {{.ID}}.",
	CodeSlotRequired:              "A save slot is required.",
	CodeWarpNegativeTicks:         "Cannot warp backwards in time.",
	CodeBuildingInsufficientOwned: "You cannot sell more buildings than you own.",
	CodePurchaseUnaffordable:      "You need {{.Price}} cookies but only have {{.Bank}}.",
	CodeUpgradeAlreadyOwned:       "You already own {{.Upgrade}}.",
	CodeUpgradeNotPurchasable:     "{{.Upgrade}} is not unlocked yet.",
	CodeClickingRateNegative:      "The clicking rate cannot be negative.",
	CodeBankNegative:              "The bank cannot go below zero.",
	CodeBuffWarpNegative:          "Buff timers cannot run backwards.",
	CodeScenarioExpectationFailed: "Scenario expectation failed at step {{.Step}}.",
	CodeNotFound:                  "Save slot not found.",
	CodeSaveVersionUnsupported:    "This save was written by an unsupported version.",
	CodeSaveChecksumMismatch:      "Save slot {{.Slot}} is corrupted.",
	CodeSaveSignatureMismatch:     "Save slot {{.Slot}} failed signature verification.",
}
