// Copyright 2026 the tabsync contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package mockwebdriver

//go:generate go run -v go.uber.org/mock/mockgen  -destination=mockwebdriver.go -package=mockwebdriver -copyright_file=../../../hack/header.txt go.tabsync.dev/internal/browser/webdriver Remote,RemoteElement
