package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/bizreg/internal/core"
	"github.com/a-h/templ"
)

// Views are plain templ components. Every dynamic value goes through
// templ.EscapeString before it is written.

// render writes an HTML component. Render errors are logged since the
// status line has already gone out.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		slog.Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// Page wraps body in the shared document shell.
func Page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t := templ.EscapeString(title)
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`+t+`</title>`+
			`<style>`+pageStyle+`</style></head><body><h2>`+t+`</h2>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<p class="nav"><a href="/">New registration</a> | <a href="/view">Stored data</a></p></body></html>`)
		return err
	})
}

const pageStyle = `body{font-family:sans-serif;background:#111;color:#eee;margin:2rem}` +
	`table{width:95%;margin:auto;border-collapse:collapse;background:#222}` +
	`th,td{border:1px solid #555;padding:10px;vertical-align:top}` +
	`fieldset{border:1px solid #555;margin-bottom:1rem}` +
	`label{display:block;margin:.4rem 0}.nav{text-align:center}` +
	`#result{font-weight:bold}`

var businessColumns = []string{
	"ID", "Business Name", "Business Mobile", "Business Type", "Timings",
	"Owner Name", "Owner Mobile", "Location", "Items",
}

// BusinessTable lists every business with its items nested in the last column.
func BusinessTable(list []core.BusinessWithItems) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<table><tr>")
		for _, col := range businessColumns {
			b.WriteString("<th>" + col + "</th>")
		}
		b.WriteString("</tr>")

		for _, biz := range list {
			b.WriteString("<tr>")
			cells := []string{
				strconv.FormatInt(int64(biz.ID), 10),
				biz.BusinessName,
				biz.BusinessMobile,
				biz.BusinessType,
				biz.Timings,
				biz.OwnerName,
				biz.OwnerMobile,
				biz.Location,
			}
			for _, c := range cells {
				b.WriteString("<td>" + templ.EscapeString(c) + "</td>")
			}
			b.WriteString("<td><ul>")
			for _, it := range biz.Items {
				b.WriteString("<li>" + templ.EscapeString(core.ItemLine(it)) + "</li>")
			}
			b.WriteString("</ul></td></tr>")
		}
		b.WriteString("</table>")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// RegistrationForm is the submission page. The inline script posts the
// fields and item rows as one JSON document to /submit.
func RegistrationForm() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, registrationFormHTML)
		return err
	})
}

const registrationFormHTML = `<form id="reg">
<fieldset><legend>Business</legend>
<label>Business Name <input name="businessName"></label>
<label>Business Mobile <input name="businessMobile" inputmode="numeric" maxlength="10"></label>
<label>Business Type <input name="type"></label>
<label>Timings <input name="timings"></label>
<label>Location <input name="location"></label>
</fieldset>
<fieldset><legend>Owner</legend>
<label>Owner Name <input name="ownerName"></label>
<label>Owner Mobile <input name="ownerMobile" inputmode="numeric" maxlength="10"></label>
</fieldset>
<fieldset><legend>Items</legend>
<table id="items"><tr><th>Item</th><th>Quantity</th><th>Unit</th><th>Buying Price</th><th>Selling Price</th><th>Requirement</th></tr></table>
<button type="button" id="add-item">Add item</button>
</fieldset>
<button type="submit">Submit</button>
<p id="result"></p>
</form>
<script>
(function () {
  var itemKeys = ["itemName", "quantity", "unit", "buyingPrice", "sellingPrice", "requirementType"];
  var form = document.getElementById("reg");
  var table = document.getElementById("items");
  document.getElementById("add-item").addEventListener("click", function () {
    var row = table.insertRow();
    itemKeys.forEach(function (k) {
      var input = document.createElement("input");
      input.dataset.key = k;
      row.insertCell().appendChild(input);
    });
  });
  form.addEventListener("submit", function (e) {
    e.preventDefault();
    var body = {};
    ["businessName", "businessMobile", "type", "timings", "ownerName", "ownerMobile", "location"].forEach(function (k) {
      body[k] = form.elements[k].value;
    });
    body.items = [];
    for (var i = 1; i < table.rows.length; i++) {
      var item = {};
      table.rows[i].querySelectorAll("input").forEach(function (input) { item[input.dataset.key] = input.value; });
      body.items.push(item);
    }
    fetch("/submit", {method: "POST", headers: {"Content-Type": "application/json"}, body: JSON.stringify(body)})
      .then(function (r) { return r.json(); })
      .then(function (res) {
        document.getElementById("result").textContent = res.message;
        if (res.success) { form.reset(); while (table.rows.length > 1) { table.deleteRow(1); } }
      })
      .catch(function () { document.getElementById("result").textContent = "Database error!"; });
  });
})();
</script>`
