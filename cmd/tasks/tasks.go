package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/amonks/tasklist/internal/editor"
	"github.com/amonks/tasklist/internal/ui"
	"github.com/amonks/tasklist/task"
	"github.com/spf13/cobra"
)

// tasks add
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task",
	Long: `Add a task with the given title.

With no title, opens $EDITOR on a new task when running interactively.
Use --edit to force the editor.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addContent string
	addEdit    bool
)

// tasks edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title or content of a task",
	Long: `Change the title or content of a task.

Fields without a flag keep their current value. With no field flags,
opens $EDITOR when running interactively. Use --no-edit to skip the
editor, or --edit to force it.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle   string
	editContent string
	editEdit    bool
	editNoEdit  bool
)

// tasks toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Flip the completion state of one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToggle,
}

// tasks delete
var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"rm"},
	Short:   "Delete one or more tasks",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runDelete,
}

// tasks list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var listJSON bool

// tasks show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show tasks in detail",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// tasks count
var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Count incomplete and completed tasks",
	Args:  cobra.NoArgs,
	RunE:  runCount,
}

var countJSON bool

func init() {
	rootCmd.AddCommand(addCmd, editCmd, toggleCmd, deleteCmd, listCmd, showCmd, countCmd)

	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Content (use '-' to read from stdin)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR")
	addContentFlagAliases(addCmd)

	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content (use '-' to read from stdin)")
	editCmd.Flags().BoolVarP(&editEdit, "edit", "e", false, "Open $EDITOR (default if interactive)")
	editCmd.Flags().BoolVar(&editNoEdit, "no-edit", false, "Do not open $EDITOR")
	addContentFlagAliases(editCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	countCmd.Flags().BoolVar(&countJSON, "json", false, "Output as JSON")
}

func runAdd(cmd *cobra.Command, args []string) error {
	content, err := readContentFromStdin(addContent, os.Stdin)
	if err != nil {
		return fmt.Errorf("read content from stdin: %w", err)
	}

	title := ""
	if len(args) > 0 {
		title = args[0]
	}

	if addEdit || (len(args) == 0 && editor.IsInteractive()) {
		draft, err := editor.EditDraft(editor.Draft{Title: title, Content: content})
		if err != nil {
			return err
		}
		title, content = draft.Title, draft.Content
	} else if len(args) == 0 {
		return fmt.Errorf("title is required (use --edit to open editor)")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	created, err := store.Create(title)
	if err != nil {
		return err
	}
	if content != "" {
		created, err = store.Update(created.ID, created.Title, content)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Created task %d: %s\n", created.ID, created.Title)
	return warnIfNotSaved(store)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := task.ParseID(args[0])
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	existing, err := store.Get(id)
	if err != nil {
		return err
	}
	title, content := existing.Title, existing.Content

	hasFlags := cmd.Flags().Changed("title") || cmd.Flags().Changed("content")
	if editOpensEditor(hasFlags, editEdit, editNoEdit, editor.IsInteractive()) {
		draft, err := editor.EditTask(existing)
		if err != nil {
			return err
		}
		title, content = draft.Title, draft.Content
	} else {
		if !hasFlags {
			return fmt.Errorf("nothing to change (use --title, --content, or --edit)")
		}
		if cmd.Flags().Changed("title") {
			title = editTitle
		}
		if cmd.Flags().Changed("content") {
			content, err = readContentFromStdin(editContent, os.Stdin)
			if err != nil {
				return fmt.Errorf("read content from stdin: %w", err)
			}
		}
	}

	updated, err := store.Update(id, title, content)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %d: %s\n", updated.ID, updated.Title)
	return warnIfNotSaved(store)
}

// editOpensEditor reports whether `tasks edit` should hand the task to
// $EDITOR. --edit wins, then --no-edit, then any field flag.
func editOpensEditor(fieldFlags, forceEdit, skipEdit, interactive bool) bool {
	switch {
	case forceEdit:
		return true
	case skipEdit, fieldFlags:
		return false
	}
	return interactive
}

func runToggle(cmd *cobra.Command, args []string) error {
	ids, err := task.ParseIDs(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	var errs []error
	for _, id := range ids {
		toggled, err := store.ToggleComplete(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		verb := "Reopened"
		if toggled.Completed {
			verb = "Completed"
		}
		fmt.Printf("%s task %d: %s\n", verb, toggled.ID, ui.TaskTitle(toggled.Title, toggled.Completed))
	}
	errs = append(errs, warnIfNotSaved(store))
	return errors.Join(errs...)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids, err := task.ParseIDs(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, id := range ids {
		if store.Delete(id) {
			fmt.Printf("Deleted task %d\n", id)
		} else {
			fmt.Printf("No task %d\n", id)
		}
	}
	return warnIfNotSaved(store)
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	tasks := store.List()
	if listJSON {
		return encodeJSONToStdout(tasks)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}
	fmt.Print(formatTaskTable(tasks))
	fmt.Println(ui.FormatSummary(store.CountIncomplete(), store.CountCompleted()))
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	ids, err := task.ParseIDs(args)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	shown := make([]task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := store.Get(id)
		if err != nil {
			return err
		}
		shown = append(shown, *t)
	}

	if showJSON {
		return encodeJSONToStdout(shown)
	}
	for i, t := range shown {
		if i > 0 {
			fmt.Println("---")
		}
		fmt.Print(formatTaskDetail(t))
	}
	return nil
}

type countResult struct {
	Incomplete int `json:"incomplete"`
	Completed  int `json:"completed"`
}

func runCount(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if countJSON {
		return encodeJSONToStdout(countResult{
			Incomplete: store.CountIncomplete(),
			Completed:  store.CountCompleted(),
		})
	}
	fmt.Println(ui.FormatSummary(store.CountIncomplete(), store.CountCompleted()))
	return nil
}

// warnIfNotSaved turns a failed write into a command error. The change
// itself was applied in memory and is lost when the process exits.
func warnIfNotSaved(store *task.Store) error {
	if err := store.PersistErr(); err != nil {
		return fmt.Errorf("changes were not saved: %w", err)
	}
	return nil
}
