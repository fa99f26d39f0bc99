// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package publish delivers test results to consumers outside the harness:
// a RabbitMQ topic exchange and a YAML report file.
package publish
