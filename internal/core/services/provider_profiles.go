package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/SscSPs/citizen_accounts/internal/apperrors"
	"github.com/SscSPs/citizen_accounts/internal/core/domain"
)

const facebookPictureURL = "https://graph.facebook.com/%s/picture?type=large"

// NormalizeGoogleProfile turns a Google profile into resolver input.
// The avatar is the profile photo without its sizing query string.
func NormalizeGoogleProfile(info domain.GoogleUserInfo, raw json.RawMessage) (domain.ResolverInput, error) {
	if info.ID == "" {
		return domain.ResolverInput{}, apperrors.NewProviderDataError("Google profile has no subject id")
	}
	if strings.TrimSpace(info.Email) == "" {
		return domain.ResolverInput{}, apperrors.NewProviderDataError("Google profile has no email")
	}

	in := domain.ResolverInput{
		Provider:    domain.ConnectionGoogle,
		SubjectID:   info.ID,
		Email:       info.Email,
		DisplayName: info.Name,
		ImageURL:    stripQuery(info.Picture),
		Profile:     raw,
	}
	if len(in.Profile) == 0 {
		in.Profile, _ = json.Marshal(info)
	}
	return in, nil
}

// NormalizeFacebookProfile turns a Graph API profile into resolver input.
// Facebook users may withhold their email; that is a ProviderDataError.
func NormalizeFacebookProfile(info domain.FacebookUserInfo, raw json.RawMessage) (domain.ResolverInput, error) {
	if info.ID == "" {
		return domain.ResolverInput{}, apperrors.NewProviderDataError("Facebook profile has no subject id")
	}
	if strings.TrimSpace(info.Email) == "" {
		return domain.ResolverInput{}, apperrors.NewProviderDataError("Facebook did not share an email address, allow email access to sign in")
	}

	picture := fmt.Sprintf(facebookPictureURL, url.PathEscape(info.ID))
	in := domain.ResolverInput{
		Provider:    domain.ConnectionFacebook,
		SubjectID:   info.ID,
		Email:       info.Email,
		DisplayName: info.Name,
		ImageURL:    &picture,
		Profile:     raw,
	}
	if len(in.Profile) == 0 {
		in.Profile, _ = json.Marshal(info)
	}
	return in, nil
}

func stripQuery(raw string) *string {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			raw = raw[:i]
		}
		return &raw
	}
	u.RawQuery = ""
	u.Fragment = ""
	s := u.String()
	return &s
}
