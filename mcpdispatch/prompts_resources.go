package mcpdispatch

import "encoding/json"

type promptDescriptor struct {
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Arguments   []promptArgumentWire `json:"arguments,omitempty"`
}

type promptArgumentWire struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

type promptsListResult struct {
	Prompts []promptDescriptor `json:"prompts"`
}

func (d *Dispatcher) handlePromptsList(req *Request) *Response {
	if d.Prompts == nil {
		return resultResponse(req.ID, promptsListResult{})
	}
	var out []promptDescriptor
	for _, p := range d.Prompts.List() {
		var args []promptArgumentWire
		for _, a := range p.Arguments {
			args = append(args, promptArgumentWire{Name: a.Name, Description: a.Description, Required: a.Required})
		}
		out = append(out, promptDescriptor{Name: p.Name, Description: p.Description, Arguments: args})
	}
	return resultResponse(req.ID, promptsListResult{Prompts: out})
}

type promptsGetParams struct {
	Name      string            `json:"name"`
	Arguments map[string]string `json:"arguments,omitempty"`
}

type promptMessage struct {
	Role    string       `json:"role"`
	Content ContentBlock `json:"content"`
}

type promptsGetResult struct {
	Description string          `json:"description,omitempty"`
	Messages    []promptMessage `json:"messages"`
}

func (d *Dispatcher) handlePromptsGet(req *Request) *Response {
	var params promptsGetParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "malformed prompts/get params: "+err.Error())
	}
	if d.Prompts == nil {
		return errorResponse(req.ID, codeInvalidParams, "prompt not found: "+params.Name)
	}
	text, err := d.Prompts.Get(params.Name, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams, err.Error())
	}
	return resultResponse(req.ID, promptsGetResult{
		Messages: []promptMessage{{Role: "user", Content: ContentBlock{Type: "text", Text: text}}},
	})
}

type resourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

type resourcesListResult struct {
	Resources []resourceDescriptor `json:"resources"`
}

func (d *Dispatcher) handleResourcesList(req *Request) *Response {
	if d.Resources == nil {
		return resultResponse(req.ID, resourcesListResult{})
	}
	var out []resourceDescriptor
	for _, r := range d.Resources.List() {
		out = append(out, resourceDescriptor{URI: r.URI, Name: r.Name, Description: r.Description, MIMEType: r.MIMEType})
	}
	return resultResponse(req.ID, resourcesListResult{Resources: out})
}

type resourcesReadParams struct {
	URI string `json:"uri"`
}

type resourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text"`
}

type resourcesReadResult struct {
	Contents []resourceContent `json:"contents"`
}

func (d *Dispatcher) handleResourcesRead(req *Request) *Response {
	var params resourcesReadParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "malformed resources/read params: "+err.Error())
	}
	if d.Resources == nil {
		return errorResponse(req.ID, codeInvalidParams, "resource not found: "+params.URI)
	}
	res, err := d.Resources.Read(params.URI)
	if err != nil {
		return errorResponse(req.ID, codeInvalidParams, err.Error())
	}
	return resultResponse(req.ID, resourcesReadResult{
		Contents: []resourceContent{{URI: res.URI, MIMEType: res.MIMEType, Text: res.Content}},
	})
}
