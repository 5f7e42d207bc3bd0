package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs_SeparateValue(t *testing.T) {
	got := FilterArgs([]string{"-a", ":8080", "-x", "junk"}, []string{"-a"})
	want := []string{"-a", ":8080"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterArgs_EqualsForm(t *testing.T) {
	got := FilterArgs([]string{"--config=conf.json", "-s=shh"}, []string{"--config", "-s"})
	want := []string{"--config=conf.json", "-s=shh"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterArgs_FlagFollowedByFlag(t *testing.T) {
	// -a has no value because the next token is another flag
	got := FilterArgs([]string{"-a", "-s", "secret"}, []string{"-a"})
	want := []string{"-a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFilterArgs_NothingAllowed(t *testing.T) {
	got := FilterArgs([]string{"-a", "1", "-b", "2"}, nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
