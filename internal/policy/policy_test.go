package policy

import (
	"testing"
	"time"

	"github.com/blogicum-next/internal/clock"
	"github.com/blogicum-next/internal/models"
)

var now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)

const (
	authorID   uint = 1
	strangerID uint = 2
)

func newTestPolicy() *Policy {
	return New(clock.Fixed(now))
}

func publicPost() *models.Post {
	return &models.Post{
		ID:          10,
		Title:       "hello",
		PubDate:     now.Add(-time.Hour),
		IsPublished: true,
		AuthorID:    authorID,
	}
}

func withCategory(post *models.Post, published bool) *models.Post {
	id := uint(7)
	post.CategoryID = &id
	post.Category = &models.Category{ID: id, Slug: "c", IsPublished: published}
	return post
}

func TestIsReadable(t *testing.T) {
	p := newTestPolicy()
	author := Viewer{UserID: authorID}
	stranger := Viewer{UserID: strangerID}
	anon := Anonymous()

	unpublished := publicPost()
	unpublished.IsPublished = false
	future := publicPost()
	future.PubDate = now.Add(time.Second)
	exactlyNow := publicPost()
	exactlyNow.PubDate = now
	danglingCategory := publicPost()
	danglingCategory.CategoryID = new(uint)

	cases := []struct {
		name   string
		post   *models.Post
		viewer Viewer
		want   bool
	}{
		{"public post anonymous", publicPost(), anon, true},
		{"public post stranger", publicPost(), stranger, true},
		{"published category", withCategory(publicPost(), true), anon, true},
		{"unpublished post anonymous", unpublished, anon, false},
		{"unpublished post stranger", unpublished, stranger, false},
		{"unpublished post author", unpublished, author, true},
		{"future post stranger", future, stranger, false},
		{"future post author", future, author, true},
		{"pub date equal to now", exactlyNow, anon, true},
		{"hidden category stranger", withCategory(publicPost(), false), stranger, false},
		{"hidden category author", withCategory(publicPost(), false), author, true},
		{"category not loaded", danglingCategory, anon, false},
		{"nil post", nil, author, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.IsReadable(tc.post, tc.viewer); got != tc.want {
				t.Fatalf("IsReadable want %v got %v", tc.want, got)
			}
		})
	}
}

func TestAnonymousIsNeverTheAuthor(t *testing.T) {
	p := newTestPolicy()
	orphan := publicPost()
	orphan.AuthorID = 0
	orphan.IsPublished = false
	if p.IsReadable(orphan, Anonymous()) {
		t.Fatalf("anonymous viewer must not match a zero author id")
	}
	if p.IsEditable(0, Anonymous()) {
		t.Fatalf("anonymous viewer must never edit")
	}
}

func TestIsEditable(t *testing.T) {
	p := newTestPolicy()
	if !p.IsEditable(authorID, Viewer{UserID: authorID}) {
		t.Fatalf("author should be able to edit")
	}
	if p.IsEditable(authorID, Viewer{UserID: strangerID}) {
		t.Fatalf("stranger must not edit")
	}
	if p.IsEditable(authorID, Anonymous()) {
		t.Fatalf("anonymous must not edit")
	}
}

func TestIsCategoryBrowsable(t *testing.T) {
	p := newTestPolicy()
	if !p.IsCategoryBrowsable(&models.Category{IsPublished: true}) {
		t.Fatalf("published category should be browsable")
	}
	if p.IsCategoryBrowsable(&models.Category{IsPublished: false}) {
		t.Fatalf("unpublished category must not be browsable")
	}
	if p.IsCategoryBrowsable(nil) {
		t.Fatalf("missing category must not be browsable")
	}
}

func TestFilters(t *testing.T) {
	p := newTestPolicy()
	public := p.PublicFilter()
	if !public.PublicOnly || !public.Now.Equal(now) {
		t.Fatalf("public filter should pin the clock instant: %+v", public)
	}
	if owner := p.ProfileFilter(authorID, Viewer{UserID: authorID}); owner.PublicOnly {
		t.Fatalf("profile owner should see every post")
	}
	if other := p.ProfileFilter(authorID, Viewer{UserID: strangerID}); !other.PublicOnly {
		t.Fatalf("other viewers should get the public filter")
	}
	if other := p.ProfileFilter(authorID, Anonymous()); !other.PublicOnly {
		t.Fatalf("anonymous viewers should get the public filter")
	}
}

func TestClockAdvanceMakesScheduledPostPublic(t *testing.T) {
	current := now
	p := New(clock.Func(func() time.Time { return current }))
	post := publicPost()
	post.PubDate = now.Add(time.Hour)
	if p.IsReadable(post, Anonymous()) {
		t.Fatalf("scheduled post must be hidden before pub_date")
	}
	current = now.Add(time.Hour)
	if !p.IsReadable(post, Anonymous()) {
		t.Fatalf("scheduled post should be visible once pub_date is reached")
	}
}
