// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package properties_test

import (
	"fmt"
	"strings"

	"github.com/yourbase/properties"
)

func ExampleLoad() {
	const file = `# Server settings
host=example.com
port: 8080
host=internal.example.com
`
	cfg, err := properties.Load(strings.NewReader(file))
	if err != nil {
		// handle error
	}

	// A repeated key keeps its first position but its last value.
	fmt.Println("Keys:", cfg.Keys())
	fmt.Println("host:", cfg.Get("host"))
	fmt.Println("port:", cfg.Get("port"))

	// Output:
	// Keys: [host port]
	// host: internal.example.com
	// port: 8080
}

func ExampleParser() {
	const file = "# header\nname=value \\\n    continued\n"
	p := properties.NewParser(strings.NewReader(file))
	for p.Scan() {
		switch ln := p.Line(); ln.Kind {
		case properties.Comment:
			fmt.Printf("comment %q\n", ln.Source)
		case properties.Entry:
			fmt.Printf("entry %s=%s\n", ln.Key, ln.Value)
		}
	}
	if err := p.Err(); err != nil {
		// handle error
	}

	// Output:
	// comment "# header\n"
	// entry name=value continued
}

func ExampleJoinKeyValue() {
	fmt.Println(properties.JoinKeyValue("host name", " example.com", "="))
	// Output:
	// host\ name=\ example.com
}

func ExampleEscape() {
	fmt.Println(properties.Escape("key = naïve"))
	// Output:
	// key\ \=\ na\u00efve
}

func ExampleUnescape() {
	s, err := properties.Unescape(`café au\ lait`)
	if err != nil {
		// handle error
	}
	fmt.Println(s)
	// Output:
	// café au lait
}
