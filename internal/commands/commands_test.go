package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"todo/internal/codec"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, svc *testutil.FakeService, args []string, quiet bool) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer

	cfg := &config.Config{
		Dir:       t.TempDir(),
		TasksFile: config.TasksFile,
		LogLevel:  config.DefaultLogLevel,
		Quiet:     quiet,
	}

	// Avoid passing a typed nil pointer as a non-nil interface.
	var s service.Service
	if svc != nil {
		s = svc
	}

	ctx := context.Background()
	code = cmd.Run(ctx, cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

// seeded returns a FakeService with a mix of open and completed tasks.
func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", true)
	svc.AddTask(2, "walk dog", false)
	svc.AddTask(4, "call mom", false)
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	cmd := &commands.VersionCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	cmd := &commands.HelpCmd{}

	stdout, stderr, code := runCommand(t, cmd, nil, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "todo add <description...>", "todo done <id>", "todo rm <id>", "Common flags:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestHelpCommand_SingleCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HelpCmd{}, nil, []string{"rm"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.Contains(stdout, "todo rm <id>") || !strings.Contains(stdout, "Aliases: delete") {
		t.Errorf("unexpected help output:\n%s", stdout)
	}
}

func TestHelpCommand_Unknown(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, []string{"nope"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown command: nope\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for list command
func TestListCommand_Mixed(t *testing.T) {
	cmd := &commands.ListCmd{}
	stdout, stderr, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	testutil.GoldenString(t, "list_mixed", stdout)
}

func TestListCommand_Open(t *testing.T) {
	cmd := &commands.ListCmd{}
	cmd.SetOpen(true)
	stdout, _, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	testutil.GoldenString(t, "list_open", stdout)
}

func TestListCommand_QuietOmitsSummary(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, seeded(), nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "   1  [x] buy milk\n   2  [ ] walk dog\n   4  [ ] call mom\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	// Quiet mode should suppress "no tasks found"
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_UnexpectedArg(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, seeded(), []string{"work"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: work\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestListCommand_StoreError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("boom")

	_, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: boom\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for add command
func TestAddCommand(t *testing.T) {
	svc := seeded()
	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"water", "the", "plants"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "added 5\n" {
		t.Errorf("expected %q, got %q", "added 5\n", stdout)
	}

	tasks := svc.Tasks()
	last := tasks[len(tasks)-1]
	want := service.Task{ID: 5, Description: "water the plants"}
	if last != want {
		t.Errorf("expected %+v, got %+v", want, last)
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService(), []string{"x"}, true)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_InvalidDescription(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args", nil, "error: description required\n"},
		{"blank", []string{"  "}, "error: description required\n"},
		{"delimiter", []string{"milk;eggs"}, "error: description must not contain ';'\n"},
		{"newline", []string{"two\nlines"}, "error: description must be a single line\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewFakeService()
			stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, tt.args, false)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
			if len(svc.Tasks()) != 0 {
				t.Errorf("expected no task to be created, got %+v", svc.Tasks())
			}
		})
	}
}

func TestAddCommand_WriteFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = &codec.WriteError{Path: "/ro/tasks.txt", Err: os.ErrPermission}

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"x"}, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	expected := "error: store error: write tasks file /ro/tasks.txt: permission denied\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

// Tests for done command
func TestDoneCommand(t *testing.T) {
	svc := seeded()
	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "completed 2\n" {
		t.Errorf("expected %q, got %q", "completed 2\n", stdout)
	}
	if !svc.Tasks()[1].Completed {
		t.Error("expected task 2 to be completed")
	}
}

func TestDoneCommand_AlreadyCompleted(t *testing.T) {
	svc := seeded()
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"#1"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !svc.Tasks()[0].Completed {
		t.Error("expected task 1 to stay completed")
	}
}

func TestDoneCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"not found", []string{"9"}, exitcode.UserError, "error: task ID not found: 9\n"},
		{"missing", nil, exitcode.UserError, "error: task ID required\n"},
		{"invalid", []string{"abc"}, exitcode.UserError, "error: invalid task ID: abc\n"},
		{"zero", []string{"0"}, exitcode.UserError, "error: invalid task ID: 0\n"},
		{"too many", []string{"1", "2"}, exitcode.UserError, "error: too many arguments: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seeded()
			before := svc.Tasks()
			stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, tt.args, false)

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
			if !reflect.DeepEqual(before, svc.Tasks()) {
				t.Errorf("tasks changed: %+v -> %+v", before, svc.Tasks())
			}
		})
	}
}

// Tests for rm command
func TestRmCommand(t *testing.T) {
	svc := seeded()
	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"2"}, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "deleted 2: walk dog\n" {
		t.Errorf("expected %q, got %q", "deleted 2: walk dog\n", stdout)
	}

	want := []service.Task{
		{ID: 1, Description: "buy milk", Completed: true},
		{ID: 4, Description: "call mom"},
	}
	if !reflect.DeepEqual(svc.Tasks(), want) {
		t.Errorf("expected %+v, got %+v", want, svc.Tasks())
	}
}

func TestRmCommand_NotFound(t *testing.T) {
	svc := testutil.NewFakeService()
	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"999"}, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: task ID not found: 999\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestRmCommand_DeleteFailure(t *testing.T) {
	svc := seeded()
	svc.DeleteTaskErr = errors.New("disk full")

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, false)

	if code != exitcode.StoreError {
		t.Errorf("expected exit code %d, got %d", exitcode.StoreError, code)
	}
	if stderr != "error: store error: disk full\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for export command
func TestExportCommand_YAML(t *testing.T) {
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("yaml")
	stdout, stderr, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.HasPrefix(stdout, "- id: 1\n") {
		t.Errorf("expected a YAML sequence, got:\n%s", stdout)
	}

	var got []service.Task
	if err := yaml.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if !reflect.DeepEqual(got, seeded().Tasks()) {
		t.Errorf("expected %+v, got %+v", seeded().Tasks(), got)
	}
}

func TestExportCommand_JSON(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask(1, "buy milk", true)

	cmd := &commands.ExportCmd{}
	cmd.SetFormat("JSON")
	stdout, _, code := runCommand(t, cmd, svc, nil, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "[\n  {\n    \"id\": 1,\n    \"description\": \"buy milk\",\n    \"completed\": true\n  }\n]\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestExportCommand_EmptyJSON(t *testing.T) {
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("json")
	stdout, _, _ := runCommand(t, cmd, testutil.NewFakeService(), nil, false)

	if stdout != "[]\n" {
		t.Errorf("expected %q, got %q", "[]\n", stdout)
	}
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	cmd := &commands.ExportCmd{}
	cmd.SetFormat("csv")
	_, stderr, code := runCommand(t, cmd, seeded(), nil, false)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown format: csv (want yaml or json)\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for menu command
func TestMenuCommand_LineInput(t *testing.T) {
	svc := testutil.NewFakeService()
	cmd := &commands.MenuCmd{In: strings.NewReader("1\nbuy milk\n1\nwalk dog\n4\n1\n3\n2\n5\n")}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: t.TempDir(), TasksFile: config.TasksFile, LogLevel: config.DefaultLogLevel}
	code := cmd.Run(ctx, cfg, svc, nil, &outBuf, &errBuf)

	if ctx.Err() != nil {
		t.Fatal("menu did not exit on its own")
	}
	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, errBuf.String())
	}
	want := []service.Task{{ID: 1, Description: "buy milk", Completed: true}}
	if got := svc.Tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

// Tests for config command
func TestConfigCommand(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	dir := t.TempDir()
	cfg := &config.Config{Dir: dir, TasksFile: "tasks.txt", LogLevel: "warn", Debug: true}

	code := (&commands.ConfigCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	stdout := outBuf.String()
	for _, want := range []string{
		`config_dir = "` + dir + `"`,
		`tasks_file = "` + filepath.Join(dir, "tasks.txt") + `"`,
		`skip_malformed = false`,
		`log_level = "debug"`,
		`config_file_present = false`,
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, stdout)
		}
	}
}

func TestConfigCommand_FilePresent(t *testing.T) {
	var outBuf, errBuf bytes.Buffer
	t.Setenv(config.EnvTasksFile, "")
	t.Setenv(config.EnvLogLevel, "")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("log_level = \"info\"\n"), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	code := (&commands.ConfigCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	for _, want := range []string{`config_file_present = true`, `log_level = "info"`} {
		if !strings.Contains(outBuf.String(), want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, outBuf.String())
		}
	}
}

func TestParseTaskID(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr string
	}{
		{[]string{"5"}, 5, ""},
		{[]string{"#12"}, 12, ""},
		{[]string{" 7 "}, 7, ""},
		{nil, 0, "task ID required"},
		{[]string{"-1"}, 0, "invalid task ID: -1"},
		{[]string{"1a"}, 0, "invalid task ID: 1a"},
		{[]string{"#"}, 0, "invalid task ID: #"},
		{[]string{"3", "4", "5"}, 0, "too many arguments: 4 5"},
	}

	for _, tt := range tests {
		got, err := commands.ParseTaskID(tt.args)
		if tt.wantErr != "" {
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("ParseTaskID(%q): expected error %q, got %v", tt.args, tt.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTaskID(%q): unexpected error %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTaskID(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}
}

func TestParseTaskID_RequiredSentinel(t *testing.T) {
	if _, err := commands.ParseTaskID(nil); !errors.Is(err, commands.ErrTaskIDRequired) {
		t.Errorf("expected ErrTaskIDRequired, got %v", err)
	}
}
