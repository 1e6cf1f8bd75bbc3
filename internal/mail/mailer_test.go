package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcomeBodyEscapesName(t *testing.T) {
	body := welcomeBody(`<script>alert(1)</script>`)

	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestPasswordResetBodyEscapesName(t *testing.T) {
	body := passwordResetBody(`Mallory <img src=x onerror=alert(1)>`, "https://example.com/reset?token=abc")

	assert.NotContains(t, body, "<img")
	assert.Contains(t, body, "Mallory &lt;img")
	assert.Contains(t, body, `<a href="https://example.com/reset?token=abc">`)
}
