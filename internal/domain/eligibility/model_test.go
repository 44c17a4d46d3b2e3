package eligibility

import (
	"strings"
	"testing"
)

func TestNormalizeReason(t *testing.T) {
	t.Parallel()

	if got := NormalizeReason("", ReasonSpoilerView); got != "spoiler_view" {
		t.Fatalf("empty reason: got %q", got)
	}
	if got := NormalizeReason("viewed stats page", ReasonSpoilerView); got != "viewed stats page" {
		t.Fatalf("explicit reason: got %q", got)
	}

	long := strings.Repeat("x", 300)
	got := NormalizeReason(long, ReasonCompleted)
	if len(got) != 255 {
		t.Fatalf("expected truncation to 255, got %d", len(got))
	}
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	if StatusEnrolled.Terminal() {
		t.Fatal("ENROLLED must not be terminal")
	}
	if !StatusIneligible.Terminal() || !StatusCompleted.Terminal() {
		t.Fatal("INELIGIBLE and COMPLETED must be terminal")
	}
}

func TestRecordValidate(t *testing.T) {
	t.Parallel()

	valid := Record{EventID: "ev1", UserID: "u1", TeamSize: 3, Status: StatusEnrolled}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record: %v", err)
	}

	badSize := valid
	badSize.TeamSize = 7
	if err := badSize.Validate(); err == nil {
		t.Fatal("expected team size error")
	}

	badStatus := valid
	badStatus.Status = "PENDING"
	if err := badStatus.Validate(); err == nil {
		t.Fatal("expected status error")
	}
}
