package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"José Ramírez", "Jose Ramirez"},
		{"Ronald Acuña Jr.", "Ronald Acuna"},
		{"Ken Griffey III", "Ken Griffey"},
		{"  Aaron   Judge ", "Aaron Judge"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestMatchKey(t *testing.T) {
	assert.Equal(t, "jose ramirez", MatchKey("José Ramírez"))
	assert.Equal(t, MatchKey("Vladimir Guerrero Jr."), MatchKey("vladimir guerrero"))
}

func TestVariants(t *testing.T) {
	tests := []struct {
		name string
		want []string
	}{
		{
			name: "Aaron Judge",
			want: []string{"Aaron Judge", "aaron judge", "Judge, Aaron", "Judge, A."},
		},
		{
			name: "José Ramírez",
			want: []string{"José Ramírez", "Jose Ramirez", "jose ramirez", "Ramírez, José", "Ramirez, Jose", "Ramírez, J."},
		},
		{
			name: "Vladimir Guerrero Jr.",
			want: []string{"Vladimir Guerrero Jr.", "Vladimir Guerrero", "vladimir guerrero", "Guerrero Jr., Vladimir", "Guerrero, Vladimir"},
		},
		{
			name: "Jackie Bradley Junior",
			want: []string{"Jackie Bradley Junior", "jackie bradley junior", "Junior, Jackie Bradley", "Junior, Jackie"},
		},
		{
			name: "Ichiro",
			want: []string{"Ichiro", "ichiro"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Variants(tt.name))
		})
	}
}

func TestVariantsNicknames(t *testing.T) {
	t.Run("nickname to full name", func(t *testing.T) {
		v := Variants("Mike Trout")
		assert.Contains(t, v, "Trout, Michael")
		assert.Contains(t, v, "Michael Trout")
	})

	t.Run("full name to nicknames", func(t *testing.T) {
		v := Variants("Michael Harris")
		assert.Contains(t, v, "Harris, Mike")
		assert.Contains(t, v, "Harris, Mikey")
		assert.Contains(t, v, "Mike Harris")
	})

	t.Run("suffix is not used as last name", func(t *testing.T) {
		v := Variants("Bobby Witt Jr.")
		assert.Contains(t, v, "Witt, Robert")
	})
}

func TestResolverRoundTrip(t *testing.T) {
	players := []string{"José Ramírez", "Aaron Judge", "Vladimir Guerrero Jr.", "Mike Trout"}
	r := NewResolver(players)

	tests := []struct {
		variant string
		want    string
	}{
		{"Ramirez, Jose", "José Ramírez"},
		{"Jose Ramirez", "José Ramírez"},
		{"Judge, Aaron", "Aaron Judge"},
		{"judge, aaron", "Aaron Judge"},
		{"AARON JUDGE", "Aaron Judge"},
		{"Guerrero Jr., Vladimir", "Vladimir Guerrero Jr."},
		{"Trout, Michael", "Mike Trout"},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			got, ok := r.Canonical(tt.variant)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := r.Canonical("Shohei Ohtani")
	assert.False(t, ok)
}

func TestResolverEveryVariantMapsToLastGenerator(t *testing.T) {
	players := []string{"Will Smith", "William Smith", "Will Smith", "Luis Garcia", "Luis García"}
	r := NewResolver(players)

	expected := make(map[string]string)
	for _, p := range players {
		for _, v := range Variants(p) {
			expected[v] = p
		}
	}

	assert.Equal(t, expected, r.Mapping())
	for variant, want := range expected {
		got, ok := r.Canonical(variant)
		require.True(t, ok, variant)
		assert.Equal(t, want, got, variant)
	}
}

func TestResolverCollisions(t *testing.T) {
	r := NewResolver([]string{"Will Smith", "William Smith"})

	got, ok := r.Canonical("Smith, Will")
	require.True(t, ok)
	assert.Equal(t, "William Smith", got)

	collisions := r.Collisions()
	require.NotEmpty(t, collisions)
	assert.Contains(t, collisions, Collision{Variant: "William Smith", Previous: "Will Smith", Winner: "William Smith"})
}

func TestResolverSkipsEmptyNames(t *testing.T) {
	r := NewResolver([]string{"", "   "})
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Variants())
	assert.Nil(t, Variants(""))
}

func TestRemap(t *testing.T) {
	r := NewResolver([]string{"José Ramírez", "Aaron Judge"})

	recent := map[string]float64{"Ramirez, Jose": 0.12, "Someone, Else": 0.5}
	season := map[string]float64{"Ramírez, José": 0.08, "Judge, A.": 0.15}

	merged := make(map[string]float64)
	assert.Equal(t, 1, Remap(r, recent, merged))
	assert.Equal(t, 1, Remap(r, season, merged))

	assert.Equal(t, map[string]float64{"José Ramírez": 0.12, "Aaron Judge": 0.15}, merged)
}
