package handler

import (
	"html/template"
	"net/http"
	"sort"

	"github.com/ec5/ec5-api/internal/domain"
)

var pageFuncs = template.FuncMap{"message": domain.Message}

var (
	homePage = template.Must(template.New("home").Funcs(pageFuncs).Parse(layoutHead + `
<h1>Epicollect5</h1>
{{if .LoggedIn}}<form method="post" action="/logout"><button>Log out</button></form>
{{else}}<p><a href="/login">Log in</a></p>{{end}}
` + layoutFoot))

	loginPage = template.Must(template.New("login").Funcs(pageFuncs).Parse(layoutHead + `
<h1>Log in</h1>
<form method="post" action="/login">
  <label>Email <input type="email" name="email" value="{{.Email}}" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button>Log in</button>
</form>
{{if .GoogleClientID}}<div id="g_id_onload" data-client_id="{{.GoogleClientID}}" data-login_uri="/login/google"></div>
<script src="https://accounts.google.com/gsi/client" async></script>{{end}}
` + layoutFoot))
)

const layoutHead = `<!doctype html>
<html lang="en"><head><meta charset="utf-8"><title>Epicollect5</title></head><body>
{{with .Errors}}<ul class="errors">{{range .}}<li data-code="{{.}}">{{message .}}</li>{{end}}</ul>{{end}}`

const layoutFoot = `
</body></html>`

type pageData struct {
	Errors         []string
	LoggedIn       bool
	Email          string
	GoogleClientID string
}

// flatten orders a flashed error bag by key for display.
func flatten(errs map[string][]string) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		out = append(out, errs[k]...)
	}
	return out
}

func render(w http.ResponseWriter, status int, t *template.Template, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = t.Execute(w, data)
}
