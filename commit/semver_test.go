package commit

import (
	"errors"
	"testing"

	"github.com/blang/semver/v4"
)

func TestSemverLatest(t *testing.T) {
	tcs := []struct {
		name   string
		tags   []string
		prefix string
		expect string
		err    error
	}{
		{
			name:   "numeric ordering",
			tags:   []string{"v0.1.0", "v0.10.0", "v0.2.0"},
			expect: "0.10.0",
		},
		{
			name:   "junk skipped",
			tags:   []string{"garbage", "v1.0.0", "also-not-semver"},
			expect: "1.0.0",
		},
		{
			name:   "prereleases skipped",
			tags:   []string{"v1.0.0", "v1.1.0-rc.1"},
			expect: "1.0.0",
		},
		{
			name:   "bare versions",
			tags:   []string{"2.3.4"},
			expect: "2.3.4",
		},
		{
			name:   "prefixed",
			tags:   []string{"banana/v2.0.0", "v9.0.0"},
			prefix: "banana/",
			expect: "2.0.0",
		},
		{
			name: "no tags",
			tags: nil,
			err:  ErrNoTags,
		},
		{
			name: "no parseable tags",
			tags: []string{"one", "two"},
			err:  ErrNoTags,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			v, err := SemverLatest(tc.tags, tc.prefix)
			if tc.err != nil {
				if !errors.Is(err, tc.err) {
					t.Fatalf("expected %v, got %v", tc.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if v.String() != tc.expect {
				t.Errorf("expected %s, got %s", tc.expect, v)
			}
		})
	}
}

func TestNextVersion(t *testing.T) {
	curr := semver.MustParse("1.2.3")
	tcs := []struct {
		rt     ReleaseType
		expect string
	}{
		{ReleaseSkip, "1.2.3"},
		{ReleasePatch, "1.2.4"},
		{ReleaseMinor, "1.3.0"},
		{ReleaseMajor, "2.0.0"},
	}
	for _, tc := range tcs {
		t.Run(tc.rt.String(), func(t *testing.T) {
			if next := NextVersion(curr, tc.rt); next.String() != tc.expect {
				t.Errorf("expected %s, got %s", tc.expect, next)
			}
		})
	}
}
