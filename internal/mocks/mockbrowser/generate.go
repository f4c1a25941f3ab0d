// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockbrowser

//go:generate go run -v go.uber.org/mock/mockgen  -destination=mockbrowser.go -package=mockbrowser -copyright_file=../../../hack/header.txt go.tabsync.dev/internal/browser Driver,Element
