package pfr

import "fmt"

// tableData is the raw team stats table as read from the page.
type tableData struct {
	Found  bool       `json:"found"`
	Over   []string   `json:"over"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// records shapes the table the way the site's CSV export does: a section
// row aligned to the header width, the header row, then data rows padded
// to the header width.
func (d tableData) records() ([][]string, error) {
	width := len(d.Header)
	if width == 0 {
		return nil, fmt.Errorf("table has no header row")
	}

	over := make([]string, width)
	copy(over, d.Over)

	records := make([][]string, 0, len(d.Rows)+2)
	records = append(records, over, append([]string(nil), d.Header...))

	for i, row := range d.Rows {
		if len(row) == 0 {
			continue
		}
		if len(row) > width {
			return nil, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), width)
		}
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}
	return records, nil
}

// extractTableJS finds table#team_stats, including the copy the site
// ships inside an HTML comment, and returns its over-header (expanded by
// colspan), header and body/footer rows as text.
var extractTableJS = `
(function() {
	var id = '` + tableID + `';
	var table = document.getElementById(id);

	if (!table) {
		var walker = document.createTreeWalker(document.body, NodeFilter.SHOW_COMMENT);
		var node;
		while ((node = walker.nextNode())) {
			if (node.nodeValue.indexOf('id="' + id + '"') === -1) continue;
			var tpl = document.createElement('template');
			tpl.innerHTML = node.nodeValue;
			table = tpl.content.querySelector('#' + id);
			if (table) break;
		}
	}

	var result = { found: false, over: [], header: [], rows: [] };
	if (!table) return result;
	result.found = true;

	var text = function(cell) { return (cell.textContent || '').trim(); };
	var cells = function(tr) { return tr.querySelectorAll('th, td'); };

	var overRow = table.querySelector('thead tr.over_header');
	if (overRow) {
		var oc = cells(overRow);
		for (var i = 0; i < oc.length; i++) {
			var span = parseInt(oc[i].getAttribute('colspan') || '1', 10);
			for (var k = 0; k < span; k++) {
				result.over.push(k === 0 ? text(oc[i]) : '');
			}
		}
	}

	var headRows = table.querySelectorAll('thead tr:not(.over_header)');
	if (headRows.length > 0) {
		var hc = cells(headRows[headRows.length - 1]);
		for (var h = 0; h < hc.length; h++) result.header.push(text(hc[h]));
	}

	var bodyRows = table.querySelectorAll('tbody tr, tfoot tr');
	for (var r = 0; r < bodyRows.length; r++) {
		if (bodyRows[r].classList.contains('thead')) continue;
		var bc = cells(bodyRows[r]);
		var row = [];
		for (var c = 0; c < bc.length; c++) row.push(text(bc[c]));
		result.rows.push(row);
	}

	return result;
})()
`
