package cms

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// WordsPerMinute is the reading speed used by ReadingTime.
const WordsPerMinute = 200

var htmlTag = regexp.MustCompile(`<[^>]*>`)

// ReadingTime estimates minutes to read an HTML body.
func ReadingTime(content string) int {
	if content == "" {
		return 0
	}
	words := len(strings.Fields(htmlTag.ReplaceAllString(content, " ")))
	return int(math.Ceil(float64(words) / WordsPerMinute))
}

// preparePost fills derived fields before a post is written: meta title and
// description when absent, and the first publish date of a published post.
func preparePost(p *BlogPost, now time.Time) {
	if p.MetaTitle == "" && p.Title != "" {
		p.MetaTitle = truncateRunes(p.Title, MaxMetaTitleLen)
	}
	if p.MetaDescription == "" && p.Excerpt != "" {
		p.MetaDescription = truncateRunes(p.Excerpt, MaxMetaDescriptionLen)
	}
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Status == PostStatusPublished && p.PublishedAt == nil {
		t := now
		p.PublishedAt = &t
	}
	p.UpdatedAt = now
}

// publishPost moves a post to published. An existing publish date is kept;
// otherwise at is used, falling back to now.
func publishPost(p *BlogPost, at *time.Time, now time.Time) {
	p.Status = PostStatusPublished
	if p.PublishedAt == nil {
		t := now
		if at != nil && !at.IsZero() {
			t = at.UTC()
		}
		p.PublishedAt = &t
	}
	p.UpdatedAt = now
}

// unpublishPost moves a post back to draft and keeps its publish date.
func unpublishPost(p *BlogPost, now time.Time) {
	p.Status = PostStatusDraft
	p.UpdatedAt = now
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
