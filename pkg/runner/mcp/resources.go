package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSubjectsResource(srv, svc)
	registerSubjectTemplate(srv, svc)
}

func registerSubjectsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"syllabus://subjects",
		"Subjects",
		mcp.WithResourceDescription("All subjects in the course catalog, in tab order."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		subjects, err := svc.ListSubjects()
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"subjects": subjects,
			"count":    len(subjects),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerSubjectTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"syllabus://subjects/{id}",
		"Subject Modules",
		mcp.WithTemplateDescription("Modules and topics of a subject."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("subject id is required")
		}

		subject, err := svc.Subject(id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"subject": subject})
	})
}

// templateArg unwraps a URI template argument, which arrives either as a
// string or as a list of strings.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
