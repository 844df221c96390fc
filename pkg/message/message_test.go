package message

import "testing"

func TestNew_FillsDefaults(t *testing.T) {
	msg := New("chat1", Text{Body: "hi"})

	if msg.ID == "" {
		t.Error("ID not generated")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
	if msg.Platform != "unknown" {
		t.Errorf("Platform = %q, want %q", msg.Platform, "unknown")
	}
	if msg.Type != TypeText {
		t.Errorf("Type = %q, want %q", msg.Type, TypeText)
	}
}

func TestFromCommand(t *testing.T) {
	msg := FromCommand("chat1", "echo", []string{"a", "b"})

	cmd, ok := msg.Content.(Command)
	if !ok {
		t.Fatalf("Content = %T, want Command", msg.Content)
	}
	if cmd.Name != "echo" || len(cmd.Args) != 2 {
		t.Errorf("Command = %+v", cmd)
	}
	if msg.Type != TypeCommand {
		t.Errorf("Type = %q, want %q", msg.Type, TypeCommand)
	}
}

func TestBuilders_CopySemantics(t *testing.T) {
	base := FromText("chat1", "hi")

	withSender := base.WithSender(NewUser("u1"))
	if base.Sender != nil {
		t.Error("WithSender mutated the original")
	}
	if withSender.Sender == nil || withSender.Sender.ID != "u1" {
		t.Errorf("Sender = %v, want u1", withSender.Sender)
	}

	tagged := base.WithPlatform("telegram").WithType(TypePhoto)
	if tagged.Platform != "telegram" || tagged.Type != TypePhoto {
		t.Errorf("tagged = %+v", tagged)
	}
	if base.Platform != "unknown" || base.Type != TypeText {
		t.Error("builders mutated the original")
	}
}

func TestTextOf(t *testing.T) {
	if text, ok := TextOf(Text{Body: "hi"}); !ok || text != "hi" {
		t.Errorf("TextOf(Text) = %q, %v", text, ok)
	}
	if _, ok := TextOf(Command{Name: "help"}); ok {
		t.Error("TextOf(Command) = ok, want false")
	}
	if _, ok := TextOf(Empty{}); ok {
		t.Error("TextOf(Empty) = ok, want false")
	}
}

func TestUser_DisplayName(t *testing.T) {
	u := NewUser("u1")
	if got := u.DisplayName(); got != "u1" {
		t.Errorf("DisplayName() = %q, want ID fallback", got)
	}

	u.FirstName = "Ada"
	u.LastName = "Lovelace"
	if got := u.DisplayName(); got != "Ada Lovelace" {
		t.Errorf("DisplayName() = %q, want full name", got)
	}

	u.Username = "ada"
	if got := u.DisplayName(); got != "ada" {
		t.Errorf("DisplayName() = %q, want username preferred", got)
	}
}
