package domain

import "strings"

// Identity is the server-side user record as observed by the client.
type Identity struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name,omitempty"`
	EmailVerified bool        `json:"email_verified"`
	Preferences   Preferences `json:"preferences"`
}

// DisplayName prefers the name and falls back to the email.
func (i Identity) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Email
}

// Clone returns a deep copy so snapshots never share slices with the store.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	c.Preferences = i.Preferences.Clone()
	return &c
}

// Preferences drives which articles the remote API puts in the feed.
// Topics and Sources behave as sets; Keywords and ExcludeKeywords keep
// insertion order because the user sees them in that order.
type Preferences struct {
	Topics          []string `json:"topics"`
	Sources         []string `json:"sources"`
	Keywords        []string `json:"keywords"`
	ExcludeKeywords []string `json:"exclude_keywords"`
}

func (p Preferences) Clone() Preferences {
	return Preferences{
		Topics:          cloneStrings(p.Topics),
		Sources:         cloneStrings(p.Sources),
		Keywords:        cloneStrings(p.Keywords),
		ExcludeKeywords: cloneStrings(p.ExcludeKeywords),
	}
}

func (p *Preferences) ToggleTopic(topic string)   { p.Topics = toggle(p.Topics, topic) }
func (p *Preferences) ToggleSource(source string) { p.Sources = toggle(p.Sources, source) }

// AddKeyword appends the trimmed keyword unless it is blank or already present.
func (p *Preferences) AddKeyword(keyword string) bool {
	var added bool
	p.Keywords, added = appendUnique(p.Keywords, keyword)
	return added
}

func (p *Preferences) RemoveKeyword(keyword string) { p.Keywords = remove(p.Keywords, keyword) }

// AddExcludeKeyword appends the trimmed keyword unless it is blank or already present.
func (p *Preferences) AddExcludeKeyword(keyword string) bool {
	var added bool
	p.ExcludeKeywords, added = appendUnique(p.ExcludeKeywords, keyword)
	return added
}

func (p *Preferences) RemoveExcludeKeyword(keyword string) {
	p.ExcludeKeywords = remove(p.ExcludeKeywords, keyword)
}

// Normalize trims every entry, drops blanks and duplicates (first occurrence
// wins) and replaces nil lists with empty ones.
func (p Preferences) Normalize() Preferences {
	return Preferences{
		Topics:          dedupe(p.Topics),
		Sources:         dedupe(p.Sources),
		Keywords:        dedupe(p.Keywords),
		ExcludeKeywords: dedupe(p.ExcludeKeywords),
	}
}

func toggle(list []string, v string) []string {
	for i, item := range list {
		if item == v {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return append(list, v)
}

func appendUnique(list []string, v string) ([]string, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return list, false
	}
	for _, item := range list {
		if item == v {
			return list, false
		}
	}
	return append(list, v), true
}

func remove(list []string, v string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

func dedupe(list []string) []string {
	out := make([]string, 0, len(list))
	for _, item := range list {
		out, _ = appendUnique(out, item)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
