/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/mastergurukulam/apiserver/cmd"

func main() {
	cmd.Execute()
}
