package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/avolkov/PodKeeper/internal/models"
)

// promptForFlavour interactively collects the fields of a new flavour
// record. Numeric inputs parse as numbers and default to zero on
// failure. barcode may be pre-filled from a scan.
func promptForFlavour(scanner *bufio.Scanner, barcode string) models.Flavour {
	if barcode == "" {
		fmt.Print("Enter barcode: ")
		scanner.Scan()
		barcode = strings.TrimSpace(scanner.Text())
	}

	fmt.Print("Enter name: ")
	scanner.Scan()
	name := scanner.Text()

	fmt.Print("Enter price per box: ")
	scanner.Scan()
	pricePerBox := models.ParseNumber(scanner.Text())

	fmt.Print("Enter pods per box: ")
	scanner.Scan()
	podsPerBox := models.ParseNumber(scanner.Text())

	return models.Flavour{
		Barcode:     barcode,
		Name:        name,
		PricePerBox: pricePerBox,
		PodsPerBox:  podsPerBox,
	}
}

// promptForPatch interactively collects a partial update. An empty
// input leaves the field unchanged.
func promptForPatch(scanner *bufio.Scanner) models.FlavourPatch {
	var p models.FlavourPatch

	fmt.Print("New barcode (empty to keep): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		p.Barcode = &v
	}

	fmt.Print("New name (empty to keep): ")
	scanner.Scan()
	if v := scanner.Text(); strings.TrimSpace(v) != "" {
		p.Name = &v
	}

	fmt.Print("New price per box (empty to keep): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		n := models.ParseNumber(v)
		p.PricePerBox = &n
	}

	fmt.Print("New pods per box (empty to keep): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		n := models.ParseNumber(v)
		p.PodsPerBox = &n
	}

	return p
}
