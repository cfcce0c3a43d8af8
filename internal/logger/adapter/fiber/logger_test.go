package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melitabakes/bakery/internal/logger"
	adapter "github.com/melitabakes/bakery/internal/logger/adapter/fiber"
)

// accessLine implements the default json format of the access log.
type accessLine struct {
	IP           string  `json:"IP"`
	Status       int     `json:"status"`
	XPerformance float64 `json:"X-Performance"`
	URI          string  `json:"URI"`
	Method       string  `json:"method"`
	Host         string  `json:"host"`
	Admin        string  `json:"admin"`
	Error        string  `json:"error"`
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     logger.Log
		next       func(c *fiber.Ctx) bool
		method     string
		target     string
		wantLogged bool
		want       accessLine
	}{
		{
			name:       "get /",
			method:     fiber.MethodGet,
			target:     "/",
			wantLogged: true,
			want:       accessLine{Status: fiber.StatusOK, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "raw uri with double slash",
			method:     fiber.MethodGet,
			target:     "//cakes",
			wantLogged: true,
			want: accessLine{
				Status: fiber.StatusNotFound, URI: "//cakes", Method: fiber.MethodGet,
				Host: "example.com", Error: "Cannot GET",
			},
		},
		{
			name:       "query string is kept",
			method:     fiber.MethodGet,
			target:     "/?cake=truffle",
			wantLogged: true,
			want:       accessLine{Status: fiber.StatusOK, URI: "/?cake=truffle", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "admin email from locals",
			method:     fiber.MethodPost,
			target:     "/admin/cakes",
			wantLogged: true,
			want: accessLine{
				Status: fiber.StatusOK, URI: "/admin/cakes", Method: fiber.MethodPost,
				Host: "example.com", Admin: "owner@melitabakes.test",
			},
		},
		{
			name:       "chain error is logged",
			method:     fiber.MethodGet,
			target:     "/broken",
			wantLogged: true,
			want: accessLine{
				Status: fiber.StatusTeapot, URI: "/broken", Method: fiber.MethodGet,
				Host: "example.com", Error: "oven on fire",
			},
		},
		{
			name:       "checkalive suppressed",
			config:     logger.Log{DisableCheckAlive: true},
			method:     fiber.MethodGet,
			target:     "/checkalive",
			wantLogged: false,
		},
		{
			name:       "checkalive logged when enabled",
			method:     fiber.MethodGet,
			target:     "/checkalive",
			wantLogged: true,
			want:       accessLine{Status: fiber.StatusOK, URI: "/checkalive", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name: "skipped by next",
			next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/static")
			},
			method:     fiber.MethodGet,
			target:     "/static/site.css",
			wantLogged: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			app := fiber.New(fiber.Config{
				ErrorHandler: func(c *fiber.Ctx, err error) error {
					code := fiber.StatusTeapot

					var fe *fiber.Error
					if errors.As(err, &fe) {
						code = fe.Code
					}

					return c.Status(code).SendString(err.Error())
				},
			})

			app.Use(func(c *fiber.Ctx) error {
				if c.Path() == "/admin/cakes" {
					c.Locals(adapter.LocalsAdminKey, "owner@melitabakes.test")
				}

				return c.Next()
			})

			app.Use(adapter.New(adapter.Config{
				Next:   tt.next,
				Config: tt.config,
				Output: &out,
			}))

			ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }

			app.Get("/", ok)
			app.Get("/checkalive", ok)
			app.Get("/static/site.css", ok)
			app.Post("/admin/cakes", ok)
			app.Get("/broken", func(*fiber.Ctx) error { return errors.New("oven on fire") })

			resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()

			if !tt.wantLogged {
				assert.Zero(t, out.Len(), "unexpected access log: %s", out.String())
				return
			}

			assert.NotEmpty(t, resp.Header.Get("X-Performance"))

			var got accessLine
			require.NoError(t, json.Unmarshal(out.Bytes(), &got))

			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.URI, got.URI)
			assert.Equal(t, tt.want.Method, got.Method)
			assert.Equal(t, tt.want.Host, got.Host)
			assert.Equal(t, tt.want.Admin, got.Admin)
			if tt.want.Error == "" {
				assert.Empty(t, got.Error)
			} else {
				assert.Contains(t, got.Error, tt.want.Error)
			}
			assert.Equal(t, "0.0.0.0", got.IP)
		})
	}
}

func TestNewWithoutWriters(t *testing.T) {
	app := fiber.New()
	app.Use(adapter.New())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("cake") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
