package toolid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolateBraceForm(t *testing.T) {
	got := Interpolate("/api/widgets/{widgetId}:activate", map[string]string{"widgetId": "12345"})
	assert.Equal(t, "/api/widgets/12345:activate", got)
}

func TestInterpolateColonForm(t *testing.T) {
	got := InterpolateOne("/widgets/:id", "id", "12345")
	assert.Equal(t, "/widgets/12345", got)
}

func TestInterpolateColonFormAtEndOfString(t *testing.T) {
	got := InterpolateOne("/widgets/:id", "id", "99")
	assert.Equal(t, "/widgets/99", got)
}

func TestInterpolateEncodedDashForm(t *testing.T) {
	// directly against an encoded id body, before decoding
	got := InterpolateOne("widgets__---widgetId:activate", "widgetId", "12345")
	assert.Equal(t, "widgets__12345:activate", got)
}

func TestInterpolateEncodedDashFormBeforeSeparator(t *testing.T) {
	got := InterpolateOne("accounts__---acctId__widgets", "acctId", "acme")
	assert.Equal(t, "accounts__acme__widgets", got)
}

func TestInterpolateLeavesOtherParamsAlone(t *testing.T) {
	got := InterpolateOne("/accounts/{accountId}/widgets/{widgetId}", "widgetId", "7")
	assert.Equal(t, "/accounts/{accountId}/widgets/7", got)
}

func TestInterpolateMultipleValues(t *testing.T) {
	got := Interpolate("/accounts/{accountId}/widgets/{widgetId}", map[string]string{
		"accountId": "acme",
		"widgetId":  "7",
	})
	assert.Equal(t, "/accounts/acme/widgets/7", got)
}

func TestInterpolateNoMatchLeavesPlaceholderUntouched(t *testing.T) {
	got := InterpolateOne("/widgets/{id}", "other", "x")
	assert.Equal(t, "/widgets/{id}", got)
}
