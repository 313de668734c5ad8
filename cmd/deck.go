package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/pokerfactory/internal/config"
	"github.com/arcanaland/pokerfactory/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage sprite decks in your deck library",
	Long:  `Commands for managing sprite decks in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()

		// Check if deck library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Deck library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'pokerfactory deck init' to create it.")
			return nil
		}

		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			return fmt.Errorf("error getting default deck: %w", err)
		}

		decks, err := deck.List(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		if len(decks) == 0 {
			fmt.Println("No decks found in your deck library.")
			fmt.Println("Create one with 'pokerfactory deck new <name>' or copy decks to:", libraryPath)
			return nil
		}

		for _, name := range decks {
			if name == defaultDeck {
				fmt.Printf("* %s %s\n", name, colorize.GreenString("[DEFAULT]"))
			} else {
				fmt.Printf("  %s\n", name)
			}
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		deckPath, err := config.GetDeckPath(deckName)
		if err != nil {
			return err
		}

		// Make sure the deck has card sprites
		if _, err := deck.LoadCards(deckPath, logger); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Printf("Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library and config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		fmt.Println("Deck library initialized at:", libraryPath)
		fmt.Println("You can now add decks with 'pokerfactory deck new <name>'.")

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

// deckNewCmd represents the deck new command
var deckNewCmd = &cobra.Command{
	Use:   "new [deck_name]",
	Short: "Create an empty deck with the asset directory layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		deckPath, err := deck.Create(libraryPath, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("New deck '%s' created at %s\n", args[0], deckPath)
		fmt.Println("Add sprites to:")
		for _, dir := range []string{deck.CardsDir, deck.SeatedDir, deck.ActiveDir, deck.TableDir} {
			fmt.Println("  " + filepath.Join(deckPath, dir))
		}

		openIfRequested(cmd, deckPath)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
	deckCmd.AddCommand(deckNewCmd)

	deckNewCmd.Flags().Bool("open", false, "Open the new deck directory")
}
