package rest

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/rocketscienceinc/gridfill-backend/internal/entity"
)

type pageData struct {
	View entity.View
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"cellClass": func(state entity.CellState) string { return state.String() },
	}
}

func loadTemplates() *template.Template {
	return template.Must(template.New("page").Funcs(funcs()).Parse(pageTemplate))
}

func renderTemplate(tpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html>
<html>
<head>
<meta charset="utf-8"/>
<title>Grid fill</title>
<style>
.board-row { display: flex; }
.board-row form { margin: 0; }
.square { width: 48px; height: 48px; border: 1px solid #999; margin: 2px; }
.square.blank { background: #fff; }
.square.selected { background: #9cf; }
.square.filled { background: #555; }
.game-result.hidden { visibility: hidden; }
</style>
</head>
<body>
<div class="game">
  <div class="game-board" id="board">
    {{range $r, $row := .View.Board}}
    <div class="board-row">
      {{range $c, $cell := $row}}
      <form action="/cells/{{$r}}/{{$c}}" method="post">
        <button type="submit" class="square {{cellClass $cell}}" data-row="{{$r}}" data-col="{{$c}}"></button>
      </form>
      {{end}}
    </div>
    {{end}}
  </div>
  <div class="game-result{{if not .View.Finished}} hidden{{end}}" id="result">{{.View.Result}}</div>
  <div class="game-controls">
    <form action="/finish" method="post">
      <button type="submit" id="finish"{{if not .View.CanFinishMove}} disabled{{end}}>Finish move</button>
    </form>
    <form action="/restart" method="post">
      <button type="submit" id="restart">Restart game</button>
    </form>
    <form action="/session/end" method="post">
      <button type="submit" id="end-session">End session</button>
    </form>
  </div>
</div>
</body>
</html>
`
