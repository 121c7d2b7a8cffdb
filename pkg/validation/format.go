package validation

import (
	"fmt"

	"github.com/iwvelando/lifepath/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}

// ValidateStoreBackend checks if the store backend is one of the supported backends.
func ValidateStoreBackend(backend string) error {
	switch backend {
	case constants.StoreBackendMemory, constants.StoreBackendSQLite, constants.StoreBackendNeo4j:
		return nil
	}
	return fmt.Errorf("expected store backend of %s, %s or %s, got %s",
		constants.StoreBackendMemory, constants.StoreBackendSQLite, constants.StoreBackendNeo4j, backend)
}
