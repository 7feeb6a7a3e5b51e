package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	srv.AddTool(mcp.NewTool(
		"list_subjects",
		mcp.WithDescription("List every subject in the course catalog."),
	), listSubjectsHandler(svc))

	srv.AddTool(mcp.NewTool(
		"select_subject",
		mcp.WithDescription("Activate a subject. Any open module and active topic are cleared."),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Subject id, for example python or mysql."),
		),
	), selectSubjectHandler(svc))

	srv.AddTool(mcp.NewTool(
		"toggle_module",
		mcp.WithDescription("Open a module of the active subject, or collapse it when it is already open."),
		mcp.WithString("module",
			mcp.Required(),
			mcp.Description("Module name inside the active subject."),
		),
	), toggleModuleHandler(svc))

	srv.AddTool(mcp.NewTool(
		"select_topic",
		mcp.WithDescription("Select a topic and return its lesson content."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic label."),
		),
		mcp.WithString("module",
			mcp.Description("Module holding the topic. When omitted the topic is recorded against the open module."),
		),
	), selectTopicHandler(svc))

	srv.AddTool(mcp.NewTool(
		"current_selection",
		mcp.WithDescription("Report the active subject, open module, active topic and progress."),
	), currentSelectionHandler(svc))

	srv.AddTool(mcp.NewTool(
		"next_topic",
		mcp.WithDescription("Mark the active topic complete and move to the next one."),
	), stepHandler(svc.NextTopic))

	srv.AddTool(mcp.NewTool(
		"previous_topic",
		mcp.WithDescription("Move to the previous topic of the same module."),
	), stepHandler(svc.PreviousTopic))

	srv.AddTool(mcp.NewTool(
		"next_module",
		mcp.WithDescription("Jump to the first topic of the following module."),
	), stepHandler(svc.NextModule))

	srv.AddTool(mcp.NewTool(
		"get_content",
		mcp.WithDescription("Fetch lesson content for the active topic, or for an explicit subject, module and topic."),
		mcp.WithString("subject", mcp.Description("Subject id.")),
		mcp.WithString("module", mcp.Description("Module name.")),
		mcp.WithString("topic", mcp.Description("Topic label.")),
	), getContentHandler(svc))

	srv.AddTool(mcp.NewTool(
		"list_bookmarks",
		mcp.WithDescription("List saved topic bookmarks."),
	), listBookmarksHandler(svc))

	srv.AddTool(mcp.NewTool(
		"toggle_bookmark",
		mcp.WithDescription("Bookmark the active topic, or remove its bookmark."),
	), toggleBookmarkHandler(svc))
}

func listSubjectsHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subjects, err := svc.ListSubjects()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"subjects": subjects,
			"count":    len(subjects),
		})
	}
}

func selectSubjectHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("subject")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SelectSubject(sessionKey(ctx), id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func toggleModuleHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("module")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.ToggleModule(sessionKey(ctx), name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func selectTopicHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Topic  string `json:"topic"`
			Module string `json:"module"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Topic == "" {
			return mcp.NewToolResultError("topic is required"), nil
		}
		dto, err := svc.SelectTopic(sessionKey(ctx), args.Module, args.Topic)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func currentSelectionHandler(svc *Service) server.ToolHandlerFunc {
	return stepHandler(svc.Current)
}

func stepHandler(step func(key string) (*SelectionDTO, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := step(sessionKey(ctx))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	}
}

func getContentHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		subject := request.GetString("subject", "")
		module := request.GetString("module", "")
		topic := request.GetString("topic", "")

		if subject == "" && module == "" && topic == "" {
			c, err := svc.Content(sessionKey(ctx))
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return toJSONResult(c)
		}
		if subject == "" || module == "" || topic == "" {
			return mcp.NewToolResultError("subject, module and topic must be given together"), nil
		}
		c, err := svc.App.Lesson(subject, module, topic)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(c)
	}
}

func listBookmarksHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		bookmarks, err := svc.ListBookmarks(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"bookmarks": bookmarks,
			"count":     len(bookmarks),
		})
	}
}

func toggleBookmarkHandler(svc *Service) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		on, dto, err := svc.ToggleBookmark(ctx, sessionKey(ctx))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"bookmarked": on,
			"selection":  dto,
		})
	}
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
