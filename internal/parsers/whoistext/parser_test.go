package whoistext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const verisignSample = `   Domain Name: EXAMPLE.COM
   Registry Domain ID: 2336799_DOMAIN_COM-VRSN
   Updated Date: 2024-08-14T07:01:34Z
   Creation Date: 1995-08-14T04:00:00Z
   Registry Expiry Date: 2025-08-13T04:00:00Z
   Registrar: RESERVED-Internet Assigned Numbers Authority
   Registrar IANA ID: 376
   Domain Status: clientDeleteProhibited https://icann.org/epp#clientDeleteProhibited
   Name Server: A.IANA-SERVERS.NET
>>> Last update of whois database: 2024-09-01T10:00:00Z <<<
`

func TestParseThinRecord(t *testing.T) {
	fields, ok := Parse(verisignSample)
	require.True(t, ok)

	assert.Equal(t, "1995-08-14T04:00:00Z", fields.CreatedDate)
	assert.Equal(t, "2025-08-13T04:00:00Z", fields.ExpiryDate)
	// "Registrar IANA ID" is the last registrar line.
	assert.Equal(t, "376", fields.Registrar)
}

func TestParseLastRegistrarWins(t *testing.T) {
	text := "Creation Date: 2020-01-01\r\nRegistrar: First Registrar Inc.\r\nRegistrar: Second Registrar LLC\r\n"

	fields, ok := Parse(text)
	require.True(t, ok)
	assert.Equal(t, "Second Registrar LLC", fields.Registrar)
}

func TestParseCaseInsensitiveLabels(t *testing.T) {
	text := `domain: example.nl
CREATED ON: 05-03-2019
Renewal Date: 05-03-2026
`
	fields, ok := Parse(text)
	require.True(t, ok)
	assert.Equal(t, "05-03-2019", fields.CreatedDate)
	assert.Equal(t, "05-03-2026", fields.ExpiryDate)
	assert.Empty(t, fields.Registrar)
}

func TestParseKeepsEarlierDateWhenLaterValueEmpty(t *testing.T) {
	text := "Created Date: 2019-02-03\nCreated Date:   \n"

	fields, ok := Parse(text)
	require.True(t, ok)
	assert.Equal(t, "2019-02-03", fields.CreatedDate)
}

func TestParseValueKeepsLaterColons(t *testing.T) {
	fields, ok := Parse("Creation Date: 2001-02-03 10:11:12\n")
	require.True(t, ok)
	assert.Equal(t, "2001-02-03 10:11:12", fields.CreatedDate)
}

func TestParseWithoutCreationDate(t *testing.T) {
	_, ok := Parse("No match for domain \"NOPE-NOPE.COM\".\nRegistrar: none\n")
	assert.False(t, ok)

	_, ok = Parse("")
	assert.False(t, ok)
}
