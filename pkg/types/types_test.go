// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestModuleKey_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key     ModuleKey
		wantErr bool
	}{
		{"com.acme:core", false},
		{NewModuleKey("org.example", "web-app"), false},
		{"core", true},
		{":core", true},
		{"com.acme:", true},
		{"com.acme:co re", true},
		{"com.acme:a,b", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			t.Parallel()
			err := tt.key.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ModuleKey(%q).Validate() error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidModuleKey) {
				t.Errorf("error should wrap ErrInvalidModuleKey, got: %v", err)
			}
		})
	}
}

func TestModuleKey_Parts(t *testing.T) {
	t.Parallel()

	k := NewModuleKey("com.acme", "core")
	if k.Group() != "com.acme" {
		t.Errorf("Group() = %q, want com.acme", k.Group())
	}
	if k.Artifact() != "core" {
		t.Errorf("Artifact() = %q, want core", k.Artifact())
	}
}

func TestPackaging_Kind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		packaging   Packaging
		want        PackagingKind
		webArtifact bool
	}{
		{PackagingJar, KindLeaf, false},
		{PackagingWar, KindLeaf, true},
		{PackagingPom, KindAggregator, false},
		{"", KindLeaf, false},
		{"maven-plugin", KindLeaf, false},
	}

	for _, tt := range tests {
		if got := tt.packaging.Kind(); got != tt.want {
			t.Errorf("Packaging(%q).Kind() = %q, want %q", tt.packaging, got, tt.want)
		}
		if got := tt.packaging.IsWebArtifact(); got != tt.webArtifact {
			t.Errorf("Packaging(%q).IsWebArtifact() = %v, want %v", tt.packaging, got, tt.webArtifact)
		}
	}
}
