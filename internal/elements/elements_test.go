package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestEl(t *testing.T) {
	tests := []struct {
		name     string
		node     *html.Node
		expected string
	}{
		{
			name:     "empty element",
			node:     El("p", nil),
			expected: "<p></p>",
		},
		{
			name:     "text child",
			node:     El("p", nil, Text("Leita...")),
			expected: "<p>Leita...</p>",
		},
		{
			name:     "attributes are sorted",
			node:     El("button", Attrs{"value": "tokyo", "class": "locations__button", "name": "location"}),
			expected: `<button class="locations__button" name="location" value="tokyo"></button>`,
		},
		{
			name:     "nested children keep order",
			node:     El("tr", nil, El("td", nil, Text("a")), El("td", nil, Text("b"))),
			expected: "<tr><td>a</td><td>b</td></tr>",
		},
		{
			name:     "nil children are skipped",
			node:     El("div", nil, nil, Text("x"), nil),
			expected: "<div>x</div>",
		},
		{
			name:     "text is escaped",
			node:     El("p", nil, Text("<b>&")),
			expected: "<p>&lt;b&gt;&amp;</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEmpty(t *testing.T) {
	n := El("div", Attrs{"class": "output"}, El("p", nil, Text("one")), El("p", nil, Text("two")))

	Empty(n)

	assert.Nil(t, n.FirstChild)
	assert.Nil(t, n.LastChild)

	got, err := Render(n)
	require.NoError(t, err)
	assert.Equal(t, `<div class="output"></div>`, got)

	// Emptying twice is harmless
	Empty(n)
	assert.Nil(t, n.FirstChild)
}

func TestFindAndHasClass(t *testing.T) {
	root := El("ul", nil,
		El("li", Attrs{"class": "locations__location"}, El("button", Attrs{"class": "locations__button big"})),
		El("li", Attrs{"class": "locations__location"}, El("button", Attrs{"class": "locations__button"})),
	)

	buttons := Find(root, ByTag("button"))
	assert.Len(t, buttons, 2)

	big := Find(root, func(n *html.Node) bool { return HasClass(n, "big") })
	require.Len(t, big, 1)
	assert.Same(t, buttons[0], big[0])

	assert.False(t, HasClass(root, "locations__location"))
}

func TestTextContent(t *testing.T) {
	n := El("section", nil, El("h2", nil, Text("Niðurstöður")), El("p", nil, Text(" fyrir")))

	assert.Equal(t, "Niðurstöður fyrir", TextContent(n))
}
