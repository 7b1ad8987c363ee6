package tools

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/thushan/pigate/internal/core/ports"
	"github.com/thushan/pigate/internal/util"
)

const defaultMaxReadBytes = 1 << 20 // 1 MiB

// Executor implements ports.ToolExecutor with the fixed built-in file
// operations the tool-call orchestrator advertises to the model.
type Executor struct {
	sandbox *Sandbox
}

func NewExecutor(sandbox *Sandbox) *Executor {
	return &Executor{sandbox: sandbox}
}

func (e *Executor) Catalogue() []ports.ToolDescriptor {
	return []ports.ToolDescriptor{
		{Name: "read_file", Description: "Read a file's contents.", Parameters: "path; optional max_bytes (default 1MiB)"},
		{Name: "write_file", Description: "Write content to a file, creating it if needed.", Parameters: "path, content"},
		{Name: "edit_file", Description: "Replace text in a file by exact match or line number.", Parameters: "path; old_text or line_number; new_text"},
		{Name: "delete_file", Description: "Delete a file or, if recursive, a directory.", Parameters: "path; optional recursive"},
		{Name: "move_file", Description: "Move or rename a file or directory.", Parameters: "source_path, destination_path"},
		{Name: "copy_file", Description: "Copy a file.", Parameters: "source_path, destination_path"},
		{Name: "list_directory", Description: "List directory entries.", Parameters: "path; optional recursive, include_hidden"},
		{Name: "create_directory", Description: "Create a directory, including parents.", Parameters: "path"},
		{Name: "check_path", Description: "Report whether a path exists and what it is.", Parameters: "path"},
	}
}

func (e *Executor) Invoke(ctx context.Context, name string, arguments map[string]interface{}) (map[string]interface{}, error) {
	switch name {
	case "read_file":
		return e.readFile(arguments), nil
	case "write_file":
		return e.writeFile(arguments), nil
	case "edit_file":
		return e.editFile(arguments), nil
	case "delete_file":
		return e.deleteFile(arguments), nil
	case "move_file":
		return e.moveFile(arguments), nil
	case "copy_file":
		return e.copyFile(arguments), nil
	case "list_directory":
		return e.listDirectory(arguments), nil
	case "create_directory":
		return e.createDirectory(arguments), nil
	case "check_path":
		return e.checkPath(arguments), nil
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

func errResult(err string) map[string]interface{} {
	return map[string]interface{}{"error": err}
}

func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key].(string)
	return v, ok
}

func (e *Executor) resolveOrError(args map[string]interface{}, key string) (string, map[string]interface{}) {
	path, ok := stringArg(args, key)
	if !ok || path == "" {
		return "", errResult(fmt.Sprintf("%s is required", key))
	}
	resolved, allowed := e.sandbox.Resolve(path)
	if !allowed {
		return "", errResult(fmt.Sprintf("path %q is outside the allowed roots", path))
	}
	return resolved, nil
}

func (e *Executor) readFile(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}

	maxBytes := int64(defaultMaxReadBytes)
	if v, ok := args["max_bytes"].(float64); ok && v > 0 {
		maxBytes = int64(v)
	}

	f, err := os.Open(resolved)
	if err != nil {
		return errResult(err.Error())
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return errResult(err.Error())
	}

	limited := io.LimitReader(f, maxBytes)
	data, err := io.ReadAll(limited)
	if err != nil {
		return errResult(err.Error())
	}

	return map[string]interface{}{
		"path":      args["path"],
		"content":   string(data),
		"size":      info.Size(),
		"truncated": info.Size() > int64(len(data)),
	}
}

func (e *Executor) writeFile(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}
	content, ok := stringArg(args, "content")
	if !ok {
		return errResult("content is required")
	}

	_, statErr := os.Stat(resolved)
	created := os.IsNotExist(statErr)

	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return errResult(err.Error())
	}
	if err := os.WriteFile(resolved, []byte(content), 0644); err != nil {
		return errResult(err.Error())
	}

	return map[string]interface{}{
		"path":          args["path"],
		"bytes_written": len(content),
		"created":       created,
	}
}

func (e *Executor) editFile(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}
	newText, ok := stringArg(args, "new_text")
	if !ok {
		return errResult("new_text is required")
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return errResult(err.Error())
	}
	original := string(data)

	var updated string
	changes := 0

	if oldText, ok := stringArg(args, "old_text"); ok && oldText != "" {
		changes = strings.Count(original, oldText)
		updated = strings.ReplaceAll(original, oldText, newText)
	} else if lineArg, ok := args["line_number"].(float64); ok {
		lines := strings.Split(original, "\n")
		idx := int(util.SafeInt32(int64(lineArg))) - 1
		if idx < 0 || idx >= len(lines) {
			return errResult(fmt.Sprintf("line_number %d out of range", int(lineArg)))
		}
		lines[idx] = newText
		updated = strings.Join(lines, "\n")
		changes = 1
	} else {
		return errResult("one of old_text or line_number is required")
	}

	if changes == 0 {
		return map[string]interface{}{"path": args["path"], "success": false, "message": "no match found", "changes_count": 0}
	}

	if err := os.WriteFile(resolved, []byte(updated), 0644); err != nil {
		return errResult(err.Error())
	}

	return map[string]interface{}{"path": args["path"], "success": true, "message": "edited", "changes_count": changes}
}

func (e *Executor) deleteFile(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return errResult(err.Error())
	}
	wasDir := info.IsDir()

	recursive, _ := args["recursive"].(bool)
	if wasDir && recursive {
		err = os.RemoveAll(resolved)
	} else {
		err = os.Remove(resolved)
	}
	if err != nil {
		return errResult(err.Error())
	}

	return map[string]interface{}{"path": args["path"], "deleted": true, "was_directory": wasDir}
}

func (e *Executor) moveFile(args map[string]interface{}) map[string]interface{} {
	src, srcErr := e.resolveOrError(args, "source_path")
	if srcErr != nil {
		return srcErr
	}
	dst, dstErr := e.resolveOrError(args, "destination_path")
	if dstErr != nil {
		return dstErr
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errResult(err.Error())
	}
	if err := os.Rename(src, dst); err != nil {
		return errResult(err.Error())
	}
	return map[string]interface{}{"source_path": args["source_path"], "destination_path": args["destination_path"], "success": true}
}

func (e *Executor) copyFile(args map[string]interface{}) map[string]interface{} {
	src, srcErr := e.resolveOrError(args, "source_path")
	if srcErr != nil {
		return srcErr
	}
	dst, dstErr := e.resolveOrError(args, "destination_path")
	if dstErr != nil {
		return dstErr
	}

	in, err := os.Open(src)
	if err != nil {
		return errResult(err.Error())
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return errResult(err.Error())
	}
	out, err := os.Create(dst)
	if err != nil {
		return errResult(err.Error())
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errResult(err.Error())
	}
	return map[string]interface{}{"source_path": args["source_path"], "destination_path": args["destination_path"], "success": true}
}

func (e *Executor) listDirectory(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}
	recursive, _ := args["recursive"].(bool)
	includeHidden, _ := args["include_hidden"].(bool)

	type item struct {
		Name        string `json:"name"`
		IsDirectory bool   `json:"is_directory"`
		Size        int64  `json:"size"`
	}
	var items []item

	err := filepath.WalkDir(resolved, func(p string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == resolved {
			return nil
		}
		if !includeHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		info, err := d.Info()
		size := int64(0)
		if err == nil {
			size = info.Size()
		}
		items = append(items, item{Name: strings.TrimPrefix(p, resolved+string(filepath.Separator)), IsDirectory: d.IsDir(), Size: size})
		if d.IsDir() && !recursive && p != resolved {
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return errResult(err.Error())
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, map[string]interface{}{"name": it.Name, "is_directory": it.IsDirectory, "size": it.Size})
	}

	return map[string]interface{}{"path": args["path"], "items": out, "count": len(out)}
}

func (e *Executor) createDirectory(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}

	if _, err := os.Stat(resolved); err == nil {
		return map[string]interface{}{"path": args["path"], "created": false, "already_exists": true}
	}

	if err := os.MkdirAll(resolved, 0755); err != nil {
		return errResult(err.Error())
	}
	return map[string]interface{}{"path": args["path"], "created": true, "already_exists": false}
}

func (e *Executor) checkPath(args map[string]interface{}) map[string]interface{} {
	resolved, errRes := e.resolveOrError(args, "path")
	if errRes != nil {
		return errRes
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return map[string]interface{}{"path": args["path"], "exists": false, "is_directory": false, "is_file": false}
	}

	result := map[string]interface{}{
		"path":         args["path"],
		"exists":       true,
		"is_directory": info.IsDir(),
		"is_file":      !info.IsDir(),
	}
	if !info.IsDir() {
		result["size"] = info.Size()
	}
	return result
}
