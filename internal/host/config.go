package host

import "github.com/spf13/viper"

// ViperConfig implements ConfigStore with a viper instance
type ViperConfig struct {
	v *viper.Viper
}

// NewViperConfig wraps v. A nil v uses the global viper instance.
func NewViperConfig(v *viper.Viper) *ViperConfig {
	if v == nil {
		v = viper.GetViper()
	}
	return &ViperConfig{v: v}
}

func (c *ViperConfig) Get(key string) any {
	return c.v.Get(key)
}

func (c *ViperConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *ViperConfig) GetBool(key string) bool {
	return c.v.GetBool(key)
}
