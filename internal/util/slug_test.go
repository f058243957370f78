// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Intro VSAT", "intro-vsat"},
		{"already slug", "intro-vsat-2", "intro-vsat-2"},
		{"accents removed", "Solusi Komunikasi Satélit", "solusi-komunikasi-satelit"},
		{"punctuation stripped", "Internet, Dedicated: 1:1!", "internet-dedicated-11"},
		{"multiple spaces", "Layanan   Fiber  Optik", "layanan-fiber-optik"},
		{"leading and trailing junk", "  --Promo Akhir Tahun--  ", "promo-akhir-tahun"},
		{"uppercase", "JARINGAN VSAT IP", "jaringan-vsat-ip"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"intro-vsat", true},
		{"intro-vsat-2", true},
		{"a", true},
		{"123", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"Upper-Case", false},
		{"with space", false},
		{"under_score", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}
