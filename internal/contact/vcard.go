package contact

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/google/uuid"

	"github.com/tartampluch/go-folio/internal/config"
)

// ErrNoOwner is returned when the profile has no name to publish.
var ErrNoOwner = errors.New(config.ErrOwnerMissing)

// OwnerCard renders profile as a vCard 4.0 document. Empty fields are omitted.
func OwnerCard(profile config.Profile) ([]byte, error) {
	name := strings.TrimSpace(profile.Name)
	if name == "" {
		return nil, ErrNoOwner
	}

	card := make(vcard.Card)
	card.SetValue(vcard.FieldFormattedName, name)
	card.SetName(&vcard.Name{
		GivenName:  profile.GivenName,
		FamilyName: profile.FamilyName,
	})
	card.SetValue(vcard.FieldUID, "urn:uuid:"+uuid.NewSHA1(uuid.NameSpaceURL, []byte(config.AppID+"/"+name)).String())

	optional := []struct{ field, value string }{
		{vcard.FieldEmail, profile.Email},
		{vcard.FieldTitle, profile.Title},
		{vcard.FieldURL, profile.URL},
		{vcard.FieldTelephone, profile.Phone},
	}
	for _, f := range optional {
		if v := strings.TrimSpace(f.value); v != "" {
			card.SetValue(f.field, v)
		}
	}

	vcard.ToV4(card)

	var buf bytes.Buffer
	if err := vcard.NewEncoder(&buf).Encode(card); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
	}
	return buf.Bytes(), nil
}
