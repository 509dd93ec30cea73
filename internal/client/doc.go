// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the credential store, session manager, API client, route guard,
// background workers and terminal UI into a single process lifecycle.
package client
