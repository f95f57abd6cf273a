package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"skintone-studio/logger"
	"skintone-studio/models"
	"skintone-studio/palette"
	"skintone-studio/repository"
)

func TestProfileUpdateLeavingCustomDropsColor(t *testing.T) {
	ctx := context.Background()
	profiles := newFakeProfiles()
	profiles.data["cus_01"] = &models.CustomerMetadata{SkinTone: models.CustomSkinToneID, CustomSkinColor: "#c87850"}
	svc := NewProfileService(profiles, repository.NewMemorySessionStore(0), palette.Default(), logger.NewNop())

	got, err := svc.Update(ctx, testSession, "cus_01", &models.ProfileSkinToneRequest{SkinTone: "fitzpatrick-3e"})
	if err != nil {
		t.Fatal(err)
	}
	tone, _ := palette.Default().ByID("fitzpatrick-3e")
	want := &models.ProfileSkinToneResponse{
		CustomerID:      "cus_01",
		SkinTone:        "fitzpatrick-3e",
		Hex:             "#D4A67C",
		ProfileComplete: true,
		Tone:            &tone,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("profile (-want +got):\n%s", diff)
	}
	if profiles.data["cus_01"].ProfileCompleted != "true" {
		t.Fatal("profile_completed not set")
	}
}

func TestProfileUpdateCustomRequiresColor(t *testing.T) {
	profiles := newFakeProfiles()
	profiles.data["cus_01"] = &models.CustomerMetadata{}
	svc := NewProfileService(profiles, repository.NewMemorySessionStore(0), palette.Default(), logger.NewNop())

	if _, err := svc.Update(context.Background(), testSession, "cus_01", &models.ProfileSkinToneRequest{SkinTone: models.CustomSkinToneID}); !errors.Is(err, ErrInvalidMaterialValue) {
		t.Fatalf("err = %v", err)
	}
	got, err := svc.Update(context.Background(), testSession, "cus_01", &models.ProfileSkinToneRequest{SkinTone: models.CustomSkinToneID, CustomColor: "C87850"})
	if err != nil {
		t.Fatal(err)
	}
	if got.CustomSkinColor != "#C87850" || got.Hex != "#C87850" {
		t.Fatalf("custom profile = %+v", got)
	}
}

func TestProfileUpdatePurgesSessionSelections(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemorySessionStore(0)
	profiles := newFakeProfiles()
	profiles.data["cus_01"] = &models.CustomerMetadata{}

	mine := repository.NewSelectionCache(repository.NewScopedSessionStore(store, testSession))
	theirs := repository.NewSelectionCache(repository.NewScopedSessionStore(store, "sess-2"))
	sel := models.ProductSkinToneSelection{SkinToneID: "fitzpatrick-1a"}
	if err := mine.SetProduct(ctx, testProduct, sel); err != nil {
		t.Fatal(err)
	}
	if err := theirs.SetProduct(ctx, testProduct, sel); err != nil {
		t.Fatal(err)
	}

	svc := NewProfileService(profiles, store, palette.Default(), logger.NewNop())
	if _, err := svc.Update(ctx, testSession, "cus_01", &models.ProfileSkinToneRequest{SkinTone: "Medium - Olive"}); err != nil {
		t.Fatal(err)
	}
	if got, _ := mine.GetProduct(ctx, testProduct); got != nil {
		t.Fatalf("own selection kept: %+v", got)
	}
	if got, _ := theirs.GetProduct(ctx, testProduct); got == nil {
		t.Fatal("other session selection purged")
	}
}

func TestProfileGetUnknownCustomer(t *testing.T) {
	svc := NewProfileService(newFakeProfiles(), repository.NewMemorySessionStore(0), palette.Default(), logger.NewNop())
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, repository.ErrCustomerNotFound) {
		t.Fatalf("err = %v", err)
	}
}
