// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Argument-contract errors
	CodeBuildingRequired     Code = "BUILDING_REQUIRED"
	CodeBuildingInvalid      Code = "BUILDING_INVALID"
	CodeUpgradeRequired      Code = "UPGRADE_REQUIRED"
	CodeUpgradeInvalid       Code = "UPGRADE_INVALID"
	CodeBuffRequired         Code = "BUFF_REQUIRED"
	CodeBuffInvalidTimer     Code = "BUFF_INVALID_TIMER"
	CodePricingInvalidConfig Code = "PRICING_INVALID_CONFIG"
	CodeStateInvalid         Code = "STATE_INVALID"
	CodeAmountNotFinite      Code = "AMOUNT_NOT_FINITE"
	CodeCommandUnknown       Code = "COMMAND_UNKNOWN"
	CodeCommandInvalid       Code = "COMMAND_INVALID"
	CodeCatalogUnknownEntry  Code = "CATALOG_UNKNOWN_ENTRY"
	CodeSlotRequired         Code = "SLOT_REQUIRED"

	// Domain-rule errors
	CodeWarpNegativeTicks         Code = "WARP_NEGATIVE_TICKS"
	CodeBuildingInsufficientOwned Code = "BUILDING_INSUFFICIENT_OWNED"
	CodePurchaseUnaffordable      Code = "PURCHASE_UNAFFORDABLE"
	CodeUpgradeAlreadyOwned       Code = "UPGRADE_ALREADY_OWNED"
	CodeUpgradeNotPurchasable     Code = "UPGRADE_NOT_PURCHASABLE"
	CodeClickingRateNegative      Code = "CLICKING_RATE_NEGATIVE"
	CodeBankNegative              Code = "BANK_NEGATIVE"
	CodeBuffWarpNegative          Code = "BUFF_WARP_NEGATIVE"
	CodeScenarioExpectationFailed Code = "SCENARIO_EXPECTATION_FAILED"

	// Storage errors
	CodeNotFound               Code = "NOT_FOUND"
	CodeSaveVersionUnsupported Code = "SAVE_VERSION_UNSUPPORTED"
	CodeSaveChecksumMismatch   Code = "SAVE_CHECKSUM_MISMATCH"
	CodeSaveSignatureMismatch  Code = "SAVE_SIGNATURE_MISMATCH"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - missing or malformed references, no state was consulted
	case CodeBuildingRequired,
		CodeBuildingInvalid,
		CodeUpgradeRequired,
		CodeUpgradeInvalid,
		CodeBuffRequired,
		CodeBuffInvalidTimer,
		CodePricingInvalidConfig,
		CodeStateInvalid,
		CodeAmountNotFinite,
		CodeCommandUnknown,
		CodeCommandInvalid,
		CodeCatalogUnknownEntry,
		CodeSlotRequired,
		CodeSaveVersionUnsupported:
		return codes.InvalidArgument

	// FailedPrecondition - the current state does not allow the operation
	case CodeWarpNegativeTicks,
		CodeBuildingInsufficientOwned,
		CodePurchaseUnaffordable,
		CodeUpgradeAlreadyOwned,
		CodeUpgradeNotPurchasable,
		CodeClickingRateNegative,
		CodeBankNegative,
		CodeBuffWarpNegative,
		CodeScenarioExpectationFailed:
		return codes.FailedPrecondition

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// DataLoss - a persisted save failed verification
	case CodeSaveChecksumMismatch, CodeSaveSignatureMismatch:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}
