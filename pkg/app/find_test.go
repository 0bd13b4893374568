package app

import (
	"context"
	"testing"

	"tableflip.dev/facemenu/pkg/menu"
)

func TestFind(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.AddMode(ctx, "main", menu.RegisteredID, "smile", "Smile")
	svc.AddGroup(ctx, "main", menu.RegisteredID, "emotes", "Emotes")
	svc.AddMode(ctx, "main", "emotes", "smirk", "Smirk")
	svc.AddMode(ctx, "main", menu.UnregisteredID, "angry", "Angry")

	res := svc.Find(ctx, "main", "smi")
	if !res.OK() {
		t.Fatalf("find: %v %v", res.Code, res.Err)
	}
	if len(res.Matches) != 2 {
		t.Fatalf("expected two matches, got %+v", res.Matches)
	}
	if res.Matches[0].ID != "smile" || res.Matches[1].ID != "smirk" {
		t.Fatalf("expected smile then smirk, got %+v", res.Matches)
	}
	if res.Matches[1].Path != menu.RegisteredID+"/Emotes" {
		t.Fatalf("unexpected path %q", res.Matches[1].Path)
	}

	if res := svc.Find(ctx, "main", "ANG"); len(res.Matches) != 1 || res.Matches[0].Path != menu.UnregisteredID {
		t.Fatalf("expected case insensitive match in UnRegistered, got %+v", res.Matches)
	}
	if res := svc.Find(ctx, "main", ""); len(res.Matches) != 4 {
		t.Fatalf("empty query lists everything, got %d", len(res.Matches))
	}
	if res := svc.Find(ctx, "main", "zzz"); len(res.Matches) != 0 {
		t.Fatalf("expected no matches, got %+v", res.Matches)
	}
	if res := svc.Find(ctx, "nope", "a"); res.Code != MenuDoesNotExist {
		t.Fatalf("expected MenuDoesNotExist, got %v", res.Code)
	}
}
