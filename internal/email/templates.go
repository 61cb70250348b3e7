package email

import (
	"bytes"
	"html/template"
)

type WelcomeData struct {
	Name string
}

type ReceiptData struct {
	Name      string
	Reference string
	Amount    string
	Method    string
	PlanName  string
	EndDate   string
}

const welcomeTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Welcome, {{.Name}}!</h2>
  <p>Your account has been approved. You can now sign in, pick a plan and
  start training.</p>
  <p>See you at the gym.</p>
</body>
</html>`

const receiptTemplate = `
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Payment received</h2>
  <p>Hi {{.Name}}, we received your payment.</p>
  <table cellpadding="4">
    <tr><td><b>Reference</b></td><td>{{.Reference}}</td></tr>
    <tr><td><b>Amount</b></td><td>{{.Amount}}</td></tr>
    <tr><td><b>Method</b></td><td>{{.Method}}</td></tr>
    <tr><td><b>Plan</b></td><td>{{.PlanName}}</td></tr>
    <tr><td><b>Valid until</b></td><td>{{.EndDate}}</td></tr>
  </table>
</body>
</html>`

type TemplateManager struct {
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	sources := map[string]string{
		"welcome": welcomeTemplate,
		"receipt": receiptTemplate,
	}

	tm := &TemplateManager{templates: make(map[string]*template.Template, len(sources))}
	for name, src := range sources {
		t, err := template.New(name).Parse(src)
		if err != nil {
			return nil, err
		}
		tm.templates[name] = t
	}
	return tm, nil
}

func (tm *TemplateManager) Render(name string, data interface{}) (string, error) {
	t, ok := tm.templates[name]
	if !ok {
		return "", templateNotFoundError(name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type templateNotFoundError string

func (e templateNotFoundError) Error() string {
	return "email template not found: " + string(e)
}
