package handler

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/swaggo/swag"
)

// Swagger serves the UI and doc.json for spec with the host and scheme of the
// calling request. spec is shared, so requests are serialized while it is
// rewritten and read.
func Swagger(spec *swag.Spec) fiber.Handler {
	var mu sync.Mutex
	cfg := swagger.ConfigDefault
	cfg.InstanceName = spec.InstanceName()
	ui := swagger.New(cfg)
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		mu.Lock()
		defer mu.Unlock()
		spec.Host = c.Get("Host")
		spec.Schemes = []string{scheme}
		return ui(c)
	}
}
