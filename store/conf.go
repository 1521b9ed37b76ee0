package store

import "fmt"

// Conf holds the connection settings for a Manager. DSN, when set,
// overwrites the assembled default.
type Conf struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	PW       string `json:"pw"`
	DB       string `json:"db"`
	TZ       string `json:"tz"` // Connection Timezone
	DSN      string `json:"dsn"`
	MaxConns int32  `json:"max_conns"`
}

func (c *Conf) dsn() string {
	if c.DSN != "" {
		return c.DSN
	}
	// NOTE: sslmode=disable is often used for local dev, adjust as needed.
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		c.Host,
		c.Port,
		c.User,
		c.PW,
		c.DB,
		c.TZ,
	)
}
