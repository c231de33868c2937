// Package candidates is an in-memory people directory that answers
// substring lookups after a simulated network delay.
package candidates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"searchselect/internal/domain"
)

// ErrMocked is returned for queries containing the failure keyword.
var ErrMocked = errors.New("mocked failure (remove the keyword from the query to recover)")

var (
	givenNames  = []string{"Ada", "Bruno", "Chiara", "Dmitri", "Esi", "Farid", "Greta", "Hiro", "Ines", "Jonas", "Kemi", "Luis"}
	familyNames = []string{"Okafor", "Lindqvist", "Moreau", "Tanaka", "Costa", "Novak", "Haddad", "Ivanova", "Mensah", "Weber", "Quispe", "Larsen"}
)

// Options configure a Directory.
type Options struct {
	Count          int
	Latency        time.Duration
	Limit          int    // 0 means unlimited
	FailureKeyword string // "" never fails
}

// Directory is a fixed, generated list of candidates. It is safe for
// concurrent use.
type Directory struct {
	all     []domain.Candidate
	byValue map[string]int
	opts    Options
}

// NewDirectory generates opts.Count candidates.
func NewDirectory(opts Options) *Directory {
	d := &Directory{
		all:     make([]domain.Candidate, opts.Count),
		byValue: make(map[string]int, opts.Count),
		opts:    opts,
	}
	for i := range d.all {
		d.all[i] = generate(i)
		d.byValue[d.all[i].Value] = i
	}
	return d
}

func generate(i int) domain.Candidate {
	gender := "women"
	if i%2 == 0 {
		gender = "men"
	}
	return domain.Candidate{
		Value:  fmt.Sprintf("cand-%04d", i),
		Label:  fmt.Sprintf("Candidate #%d - %s %s", i, givenNames[i%len(givenNames)], familyNames[(i/len(givenNames))%len(familyNames)]),
		Email:  fmt.Sprintf("user%d@example.com", i),
		Avatar: fmt.Sprintf("https://randomuser.me/api/portraits/%s/%d.jpg", gender, i%100),
	}
}

// Len is the number of candidates.
func (d *Directory) Len() int { return len(d.all) }

// ByValue looks a candidate up by its identity.
func (d *Directory) ByValue(value string) (domain.Candidate, bool) {
	i, ok := d.byValue[value]
	if !ok {
		return domain.Candidate{}, false
	}
	return d.all[i], true
}

// Search filters synchronously: a case-insensitive substring match on label,
// email or value, in directory order, capped at the limit.
func (d *Directory) Search(query string) ([]domain.Candidate, error) {
	lower := strings.ToLower(query)
	if kw := strings.ToLower(d.opts.FailureKeyword); kw != "" && strings.Contains(lower, kw) {
		return nil, ErrMocked
	}

	out := []domain.Candidate{}
	for _, c := range d.all {
		if d.opts.Limit > 0 && len(out) == d.opts.Limit {
			break
		}
		if strings.Contains(strings.ToLower(c.Label), lower) ||
			strings.Contains(strings.ToLower(c.Email), lower) ||
			strings.Contains(strings.ToLower(c.Value), lower) {
			out = append(out, c)
		}
	}
	return out, nil
}

// FetchOptions waits for the configured latency and then searches. It
// implements fetch.Provider.
func (d *Directory) FetchOptions(ctx context.Context, query string) ([]domain.Candidate, error) {
	if d.opts.Latency > 0 {
		timer := time.NewTimer(d.opts.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return d.Search(query)
}
