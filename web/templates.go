package web

import (
	"html/template"

	"github.com/amonks/tasklist/task"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"checkbox": checkbox,
		"titleOrPlaceholder": func(t task.Task) string {
			if t.Title == "" {
				return "(untitled)"
			}
			return t.Title
		},
	}
	return template.Must(template.New("page").Funcs(funcs).Parse(pageTemplate))
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Tasks</title>
  <style>
    :root {
      color-scheme: light;
    }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #2b2520;
      background: radial-gradient(circle at top left, #f4efe3 0%, #fcfaf6 55%, #f6f2e8 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #d7cdbd;
      background: rgba(255, 255, 255, 0.72);
      backdrop-filter: blur(6px);
    }
    header h1 {
      margin: 0 0 8px 0;
      font-size: 20px;
      letter-spacing: 0.02em;
    }
    main {
      display: flex;
      gap: 18px;
      padding: 18px 24px 28px;
    }
    .pane {
      background: #ffffff;
      border: 1px solid #d7cdbd;
      border-radius: 14px;
      box-shadow: 0 8px 24px rgba(60, 45, 30, 0.08);
    }
    .list-pane {
      width: 35%;
      min-width: 240px;
      padding: 16px;
      display: flex;
      flex-direction: column;
      gap: 12px;
    }
    .detail-pane {
      flex: 1;
      padding: 18px 22px 22px;
    }
    .list-actions {
      display: flex;
      justify-content: space-between;
      align-items: center;
      gap: 12px;
    }
    .button-link {
      display: inline-block;
      padding: 6px 12px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      background: #f7f2e8;
      text-decoration: none;
      color: #2b2520;
      font-size: 14px;
    }
    .item-list {
      list-style: none;
      padding: 0;
      margin: 0;
      display: flex;
      flex-direction: column;
      gap: 8px;
      overflow-y: auto;
    }
    .list-item a {
      display: block;
      padding: 10px 12px;
      border-radius: 10px;
      border: 1px solid transparent;
      text-decoration: none;
      color: inherit;
    }
    .list-item.active a {
      border-color: #c7baa8;
      background: #f6f0e6;
    }
    .item-title {
      font-weight: 600;
      display: block;
    }
    .item-meta {
      color: #72685f;
      font-size: 12px;
    }
    .field {
      display: flex;
      flex-direction: column;
      gap: 6px;
      margin-bottom: 12px;
    }
    input[type="text"],
    select,
    textarea {
      width: 100%;
      padding: 8px 10px;
      border-radius: 8px;
      border: 1px solid #cbbfae;
      font-family: inherit;
      font-size: 14px;
      background: #fffdf9;
      box-sizing: border-box;
    }
    textarea {
      min-height: 120px;
      resize: vertical;
    }
    .actions {
      display: flex;
      flex-wrap: wrap;
      gap: 10px;
      margin-top: 16px;
    }
    button {
      padding: 8px 14px;
      border-radius: 8px;
      border: 1px solid #bfb3a2;
      background: #efe6d7;
      font-family: inherit;
      cursor: pointer;
    }
    button.danger {
      background: #f4d7d2;
      border-color: #d7a7a1;
    }
    .counts {
      color: #5b5148;
      font-size: 14px;
    }
    .list-item {
      display: flex;
      align-items: center;
      gap: 8px;
    }
    .list-item a {
      flex: 1;
    }
    .list-item.done .item-title {
      text-decoration: line-through;
      color: #8a7f75;
    }
    .inline {
      display: inline;
      margin: 0;
    }
    .check {
      padding: 2px 8px;
      font-family: "Menlo", "Consolas", monospace;
    }
    .content {
      white-space: pre-wrap;
    }
    .error {
      padding: 10px 12px;
      border-radius: 8px;
      background: #f7d9d6;
      border: 1px solid #d9a7a2;
      margin-bottom: 12px;
      color: #5b1d17;
    }
    .muted {
      color: #72685f;
    }
    @media (max-width: 900px) {
      main {
        flex-direction: column;
      }
      .list-pane {
        width: auto;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>Tasks</h1>
    <div class="counts">{{.CountIncomplete}} incomplete, {{.CountCompleted}} completed</div>
  </header>
  <main>
    <section class="pane list-pane">
      {{if .PersistError}}<div class="error">{{.PersistError}}</div>{{end}}
      {{if .CreateError}}<div class="error">{{.CreateError}}</div>{{end}}
      <form method="post" action="/web/tasks/create">
        <div class="field">
          <label for="new-title">New task</label>
          <input id="new-title" type="text" name="title" value="{{.CreateForm.Title}}" placeholder="What needs doing?">
        </div>
        <div class="actions">
          <button type="submit">Add task</button>
        </div>
      </form>
      <ul class="item-list">
        {{range .Tasks}}
          <li class="list-item{{if .Completed}} done{{end}}{{if eq .ID $.SelectedID}} active{{end}}">
            <form class="inline" method="post" action="/web/tasks/toggle?id={{.ID}}">
              <button class="check" type="submit" title="Toggle">{{checkbox .Completed}}</button>
            </form>
            <a href="/web/tasks?id={{.ID}}">
              <span class="item-title">{{titleOrPlaceholder .}}</span>
              <span class="item-meta">#{{.ID}}</span>
            </a>
            <form class="inline" method="post" action="/web/tasks/delete?id={{.ID}}">
              <button class="danger" type="submit">Delete</button>
            </form>
          </li>
        {{else}}
          <li class="muted">No tasks found.</li>
        {{end}}
      </ul>
    </section>
    <section class="pane detail-pane">
      {{if .Selected}}
        {{if .EditError}}<div class="error">{{.EditError}}</div>{{end}}
        <h2>Edit task {{.Selected.ID}}</h2>
        <form method="post" action="/web/tasks/update?id={{.Selected.ID}}">
          <div class="field">
            <label for="task-title">Title</label>
            <input id="task-title" type="text" name="title" value="{{.EditForm.Title}}">
          </div>
          <div class="field">
            <label for="task-content">Content</label>
            <textarea id="task-content" name="content">{{.EditForm.Content}}</textarea>
          </div>
          <div class="actions">
            <button type="submit">Save changes</button>
            <a class="button-link" href="/web/tasks">Cancel</a>
          </div>
        </form>
        <div class="actions">
          <form class="inline" method="post" action="/web/tasks/toggle?id={{.Selected.ID}}&from=detail">
            <button type="submit">{{if .Selected.Completed}}Mark incomplete{{else}}Mark complete{{end}}</button>
          </form>
          <form class="inline" method="post" action="/web/tasks/delete?id={{.Selected.ID}}">
            <button class="danger" type="submit">Delete task</button>
          </form>
        </div>
      {{else}}
        <p class="muted">Select a task to edit it.</p>
      {{end}}
    </section>
  </main>
</body>
</html>
`
