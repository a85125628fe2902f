// Package modelfile provides a host provider for model exports saved as
// JSON or YAML documents.
//
// This file registers the model file provider with the host registry.
// Import this package with a blank identifier to register the provider:
//
//	import _ "github.com/AbdulrahmanBUW/LengthCalculator/pkg/hosts/modelfile"
package modelfile

import (
	"log/slog"

	"github.com/AbdulrahmanBUW/LengthCalculator/pkg/host"
)

func init() {
	host.Register("modelfile", func(logger *slog.Logger) host.Provider { return New(logger) })
}
