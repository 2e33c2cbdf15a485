package atcoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSource(t *testing.T) {
	page := `<html><body>
<div class="container">
<pre id="submission-code">#include &lt;iostream&gt;
int main() { return 0; }
</pre>
</div>
</body></html>`

	source, ok := ExtractSource(page)
	assert.True(t, ok)
	assert.Equal(t, "#include <iostream>\nint main() { return 0; }\n", source)
}

func TestExtractSourceMissingElement(t *testing.T) {
	source, ok := ExtractSource(`<html><body><p>404 Not Found</p></body></html>`)
	assert.False(t, ok)
	assert.Empty(t, source)
}

func TestExtractSourceEmptyElement(t *testing.T) {
	source, ok := ExtractSource(`<html><body><pre id="submission-code"></pre></body></html>`)
	assert.False(t, ok)
	assert.Empty(t, source)
}
