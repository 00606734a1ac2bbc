package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAppSecret = "app-secret"

func signedApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhook", VerifySignature(testAppSecret), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValidSignature(t *testing.T) {
	app := signedApp()
	body := []byte(`{"object":"page","entry":[]}`)

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign(testAppSecret, body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestVerifySignatureRejectsMissingHeader(t *testing.T) {
	app := signedApp()

	resp, err := app.Test(httptest.NewRequest("POST", "/webhook", bytes.NewReader([]byte(`{}`))))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifySignatureRejectsWrongSecret(t *testing.T) {
	app := signedApp()
	body := []byte(`{"object":"page","entry":[]}`)

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", sign("other-secret", body))

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestVerifySignatureRejectsTamperedBody(t *testing.T) {
	app := signedApp()
	signature := sign(testAppSecret, []byte(`{"object":"page"}`))

	req := httptest.NewRequest("POST", "/webhook", bytes.NewReader([]byte(`{"object":"tampered"}`)))
	req.Header.Set("X-Hub-Signature-256", signature)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
