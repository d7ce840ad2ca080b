package toast_test

import (
	"context"
	"fmt"
	"log"

	"github.com/toastkit/toastkit/pkg/toast"
)

func ExampleManager_Notify() {
	ctx := context.Background()

	// Zero default duration keeps the example deterministic: nothing expires.
	manager := toast.NewManager(toast.NewMemoryStore(), toast.WithDefaultDuration(0))
	defer manager.Close()

	if _, err := manager.Success(ctx, "Profile updated"); err != nil {
		log.Fatal(err)
	}
	if _, err := manager.Error(ctx, "Upload failed", toast.WithTitle("Storage")); err != nil {
		log.Fatal(err)
	}

	items, err := manager.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, item := range items {
		fmt.Printf("%s: %s\n", item.Severity, item.Message)
	}
	// Output:
	// success: Profile updated
	// error: Upload failed
}

func ExampleManager_Dismiss() {
	ctx := context.Background()

	manager := toast.NewManager(toast.NewMemoryStore(), toast.WithDefaultDuration(0))
	defer manager.Close()

	first, err := manager.Info(ctx, "First")
	if err != nil {
		log.Fatal(err)
	}
	if _, err := manager.Info(ctx, "Second"); err != nil {
		log.Fatal(err)
	}

	// Dismissing the first toast leaves the second in place.
	if err := manager.Dismiss(ctx, first); err != nil {
		log.Fatal(err)
	}

	items, err := manager.List(ctx)
	if err != nil {
		log.Fatal(err)
	}
	for _, item := range items {
		fmt.Println(item.Message)
	}
	// Output: Second
}

func ExampleManager_Subscribe() {
	ctx := context.Background()

	manager := toast.NewManager(toast.NewMemoryStore(), toast.WithDefaultDuration(0))
	defer manager.Close()

	sub := manager.Subscribe(ctx)
	defer sub.Close()

	if _, err := manager.Warning(ctx, "Disk almost full"); err != nil {
		log.Fatal(err)
	}

	ev := <-sub.Events()
	fmt.Printf("%s: %s\n", ev.Type, ev.Toast.Message)
	// Output: pushed: Disk almost full
}

func ExampleHub() {
	ctx := context.Background()

	hub := toast.NewHub(func(scope string) *toast.Manager {
		return toast.NewManager(toast.NewMemoryStore(), toast.WithDefaultDuration(0))
	})
	defer hub.Close()

	// Each scope sees only its own toasts.
	if _, err := hub.Scope("alice").Success(ctx, "Welcome back"); err != nil {
		log.Fatal(err)
	}

	aliceCount, _ := hub.Scope("alice").Count(ctx)
	bobCount, _ := hub.Scope("bob").Count(ctx)
	fmt.Printf("alice=%d bob=%d\n", aliceCount, bobCount)
	// Output: alice=1 bob=0
}
