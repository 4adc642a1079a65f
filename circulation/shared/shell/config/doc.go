// Package config loads the service configuration with viper and builds the infrastructure
// it describes: the event store engine with its database connection, the slog logger
// and the OpenTelemetry providers.
//
// This package is part of the shell (infrastructure) layer.
package config
