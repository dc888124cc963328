package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var testSpec = &swag.Spec{
	InfoInstanceName: "handler_swagger_test",
	SwaggerTemplate:  `{"host": "{{.Host}}", "schemes": {{ marshal .Schemes }}}`,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(testSpec.InstanceName(), testSpec)
}

type swaggerDoc struct {
	Host    string   `json:"host"`
	Schemes []string `json:"schemes"`
}

func getDoc(app *fiber.App, host, proto string) (swaggerDoc, error) {
	var doc swaggerDoc
	req := httptest.NewRequest("GET", "/swagger/doc.json", nil)
	req.Host = host
	if proto != "" {
		req.Header.Set("X-Forwarded-Proto", proto)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		return doc, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		return doc, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return doc, err
	}
	err = json.Unmarshal(body, &doc)
	return doc, err
}

func TestSwagger(t *testing.T) {
	app := fiber.New()
	app.Get("/swagger/*", Swagger(testSpec))

	t.Run("host and scheme from request", func(t *testing.T) {
		doc, err := getDoc(app, "api.example.test", "")
		require.NoError(t, err)
		assert.Equal(t, "api.example.test", doc.Host)
		assert.Equal(t, []string{"http"}, doc.Schemes)
	})

	t.Run("forwarded proto wins", func(t *testing.T) {
		doc, err := getDoc(app, "api.example.test", "https, http")
		require.NoError(t, err)
		assert.Equal(t, []string{"https"}, doc.Schemes)
	})

	t.Run("concurrent requests see their own host", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				host := fmt.Sprintf("host-%d.example.test", i)
				doc, err := getDoc(app, host, "")
				if assert.NoError(t, err) {
					assert.Equal(t, host, doc.Host)
				}
			}(i)
		}
		wg.Wait()
	})
}
