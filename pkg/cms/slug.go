package cms

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugAttempts bounds the number of candidates EnsureUniqueSlug tries.
const MaxSlugAttempts = 1000

var slugReplacer = strings.NewReplacer("&", " and ")

// GenerateSlug maps text to a lowercase, hyphen separated token made of
// [a-z0-9]. Accented Latin letters are reduced to their base letter. Input
// without any alphanumerics yields "".
func GenerateSlug(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(slugReplacer.Replace(folded))

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SlugExistsFunc reports whether candidate is used by a record other than excludeID.
type SlugExistsFunc func(ctx context.Context, candidate string, excludeID uuid.UUID) (bool, error)

// EnsureUniqueSlug returns base if it is free, otherwise the first free
// base-N for N = 1, 2, ... Pass uuid.Nil as excludeID when creating.
func EnsureUniqueSlug(ctx context.Context, base string, exists SlugExistsFunc, excludeID uuid.UUID) (string, error) {
	if base == "" {
		return "", ErrEmptySlug
	}

	candidate := base
	for i := 1; i <= MaxSlugAttempts; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", fmt.Errorf("check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("%w: %q after %d attempts", ErrSlugExhausted, base, MaxSlugAttempts)
}

// truncateSlug shortens a base slug so that base-999 still fits in
// MaxSlugLen, without leaving a trailing hyphen.
func truncateSlug(slug string) string {
	const maxBase = MaxSlugLen - 4
	if len(slug) <= maxBase {
		return slug
	}
	return strings.TrimRight(slug[:maxBase], "-")
}
