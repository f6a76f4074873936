package render

import "html/template"

const questionTemplate = `{{define "question"}}<div class="question-block" data-question-id="{{.QuestionID}}" data-question-type="{{.Type}}">
<h4 class="question-title">{{.Title}}{{if .Required}} <span class="required">*</span>{{end}}</h4>
{{- if .Image}}
<div class="question-image"><img src="{{.Image}}" alt="Image for question: {{.Title}}"></div>
{{- end}}
<div class="question-input">
{{- if eq (print .Type) "multiple_text"}}
{{- range .TextFields}}
<div class="text-input-field"><label>{{.Label}}</label><input type="text" name="{{.Name}}" class="survey-text" placeholder="{{.Placeholder}}" value="{{.Value}}"{{if .Required}} required{{end}}{{if $.Disabled}} disabled{{end}}></div>
{{- end}}
{{- else if .Matching}}
<div class="matching-items-grid">
{{- range .Matching}}
<div class="matching-item-row" data-item-index="{{.Index}}">
<div class="matching-item-text">{{.Item}}</div>
<div class="matching-item-options">
{{- range .Controls}}
<label class="matching-option-label"><input type="radio" name="{{.Name}}" value="{{.Value}}"{{if .Checked}} checked{{end}}{{if .Required}} required{{end}}{{if $.Disabled}} disabled{{end}}><span class="matching-option-text">{{.Label}}</span></label>
{{- end}}
</div>
{{- if .HasFeedback}}
<div class="feedback-container"><div class="feedback-icon">&#8505;</div><div class="feedback-text">{{.Feedback}}</div></div>
{{- end}}
</div>
{{- end}}
</div>
{{- else if .Choices}}
<div class="{{print .Type}}-options">
{{- range .Choices}}
{{- if .Other}}
<div class="other-option-container">
<label class="{{.Kind}}-label"><input type="{{.Kind}}" name="{{.Name}}" value="{{.Value}}" class="other-option-input"{{if .Checked}} checked{{end}}{{if $.Disabled}} disabled{{end}}><span class="{{.Kind}}-text">{{.Label}}</span></label>
{{- with $.OtherText}}
<input type="text" class="other-text-input" name="{{.Name}}" placeholder="{{.Placeholder}}" value="{{.Value}}"{{if $.Disabled}} disabled{{end}}>
{{- end}}
</div>
{{- else}}
<label class="{{.Kind}}-label"><input type="{{.Kind}}" name="{{.Name}}" value="{{.Value}}" data-correct="{{if .Correct}}1{{else}}0{{end}}"{{if .Checked}} checked{{end}}{{if .Required}} required{{end}}{{if $.Disabled}} disabled{{end}}><span class="{{.Kind}}-text">{{.Label}}</span></label>
{{- end}}
{{- end}}
</div>
{{- else}}
{{- range .TextFields}}
{{- if .Multiline}}
<textarea name="{{.Name}}" class="survey-textarea"{{if .Required}} required{{end}}{{if $.Disabled}} disabled{{end}}>{{.Value}}</textarea>
{{- else}}
<input type="text" name="{{.Name}}" class="survey-text" value="{{.Value}}"{{if .Required}} required{{end}}{{if $.Disabled}} disabled{{end}}>
{{- end}}
{{- end}}
{{- end}}
</div>
<div class="question-feedback" hidden>
{{- range .OptionFeedback}}
<div class="feedback-text" data-option="{{.Option}}" hidden><div class="feedback-content">{{.Text}}</div></div>
{{- end}}
</div>
</div>{{end}}`

const formTemplate = `{{define "form"}}<form id="survey-form" class="survey-form" data-survey-id="{{.SurveyID}}">
<input type="hidden" name="survey_id" value="{{.SurveyID}}">
<input type="hidden" id="survey-token" name="token" value="{{.Token}}">
{{- range .Questions}}
{{template "question" .}}
{{- end}}
<div class="survey-submit"><button type="submit" class="submit-button">Submit</button></div>
<div class="survey-success-message" hidden>{{.SuccessMessage}}</div>
<div class="status-text">{{.Status}}</div>
</form>{{end}}`

var templates = template.Must(template.Must(template.New("survey").Parse(questionTemplate)).Parse(formTemplate))
