package htmlutil

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const tablePage = `<html><body>
<table class="gridtable">
	<thead><tr><th>序号</th><th> 教学楼 </th><th>名称</th><th></th></tr></thead>
	<tbody>
		<tr><td>1</td><td>工学馆</td><td>
			工学馆101
		</td><td>extra</td></tr>
		<tr></tr>
		<tr><td>2</td><td>基础楼</td><td>基础楼 203</td><td>x</td><td>overflow</td></tr>
	</tbody>
</table>
<script>var a = 1;</script>
<script>
	form['password'].value = CryptoJS.SHA1('abc-123-' + form['password'].value);
</script>
</body></html>`

func TestParseTable(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tablePage))
	require.NoError(t, err)

	rows := ParseTable(context.Background(), doc.Find("table.gridtable"))
	diff := cmp.Diff([]map[string]string{
		{"序号": "1", "教学楼": "工学馆", "名称": "工学馆101", "column4": "extra"},
		{"序号": "2", "教学楼": "基础楼", "名称": "基础楼 203", "column4": "x", "column5": "overflow"},
	}, rows)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestFindInScripts(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tablePage))
	require.NoError(t, err)

	salt, ok := FindInScripts(doc, regexp.MustCompile(`CryptoJS\.SHA1\('([^']+)-' \+`))
	require.True(t, ok)
	require.Equal(t, "abc-123", salt)

	_, ok = FindInScripts(doc, regexp.MustCompile(`nothing(here)`))
	require.False(t, ok)
}
