package site

import "time"

// Config holds the site module settings.
type Config struct {
	// MountTimeout bounds how long a navigation waits for the new page to
	// report it has mounted before the scroll is dropped.
	MountTimeout time.Duration `env:"NAV_MOUNT_TIMEOUT" envDefault:"5s"`
	SendTimeout  time.Duration `env:"CONTACT_SEND_TIMEOUT" envDefault:"20s"`
	Threshold    float64       `env:"NAV_VISIBILITY_THRESHOLD" envDefault:"0.5"`
	QRSize       int           `env:"WHATSAPP_QR_SIZE" envDefault:"256"`
	TeamEmail    string        `env:"CONTACT_TEAM_EMAIL" envDefault:"exports@velveproduce.com"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		MountTimeout: 5 * time.Second,
		SendTimeout:  20 * time.Second,
		Threshold:    0.5,
		QRSize:       256,
		TeamEmail:    "exports@velveproduce.com",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MountTimeout <= 0 {
		c.MountTimeout = def.MountTimeout
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = def.SendTimeout
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		c.Threshold = def.Threshold
	}
	if c.QRSize <= 0 {
		c.QRSize = def.QRSize
	}
	return c
}
