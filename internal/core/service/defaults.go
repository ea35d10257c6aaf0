package service

import "github.com/spf13/viper"

// DefaultsProvider supplies the fallback value for a channel variable that
// has never been set for a channel.
type DefaultsProvider interface {
	Default(variable string) string
}

// ConfigDefaults reads fallback values from the `defaults` section of the
// config file.
type ConfigDefaults struct{}

func (ConfigDefaults) Default(variable string) string {
	return viper.GetString("defaults." + variable)
}
