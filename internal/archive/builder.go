// Package archive materializes a minimal Expo-style project skeleton for a
// generated screen and compresses it into a single downloadable zip.
package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const entryPoint = "import GeneratedScreen from './screens/GeneratedScreen';\n\nexport default function App() {\n  return <GeneratedScreen />;\n}\n"

type manifest struct {
	Name         string            `json:"name"`
	Main         string            `json:"main"`
	Dependencies map[string]string `json:"dependencies"`
}

// dependencies is the fixed set shipped with every generated project.
func dependencies() map[string]string {
	return map[string]string{
		"react":        "^18.0.0",
		"react-native": "^0.72.0",
		"nativewind":   "^2.0.11",
	}
}

// Build writes the project skeleton into a fresh temporary directory and
// returns the path of the resulting `<projectName>.zip`. The archive holds
// exactly four entries under project/: the App.js entry point, the screen
// file carrying code verbatim, the package.json manifest and a README.
func Build(code, projectName string) (string, error) {
	tempDir, err := os.MkdirTemp("", "appbuilder-")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	projectDir := filepath.Join(tempDir, "project")
	screensDir := filepath.Join(projectDir, "screens")
	if err := os.MkdirAll(screensDir, 0o755); err != nil {
		return "", fmt.Errorf("create project dirs: %w", err)
	}

	if err := os.WriteFile(filepath.Join(projectDir, "App.js"), []byte(entryPoint), 0o644); err != nil {
		return "", fmt.Errorf("write App.js: %w", err)
	}
	if err := os.WriteFile(filepath.Join(screensDir, "GeneratedScreen.js"), []byte(code), 0o644); err != nil {
		return "", fmt.Errorf("write GeneratedScreen.js: %w", err)
	}

	pkg, err := json.MarshalIndent(manifest{
		Name:         projectName,
		Main:         "App.js",
		Dependencies: dependencies(),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal package.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(projectDir, "package.json"), append(pkg, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write package.json: %w", err)
	}

	readme := "# " + projectName + "\n\nGenerated with App Builder.\n"
	if err := os.WriteFile(filepath.Join(projectDir, "README.md"), []byte(readme), 0o644); err != nil {
		return "", fmt.Errorf("write README.md: %w", err)
	}

	zipPath := filepath.Join(tempDir, projectName+".zip")
	if err := zipTree(zipPath, tempDir, projectDir); err != nil {
		return "", err
	}
	return zipPath, nil
}

// zipTree compresses root recursively into zipPath with deflate, entry names
// relative to base so paths inside the archive read project/<file>.
func zipTree(zipPath, base, root string) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()

		_, err = io.Copy(w, src)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("compress project: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize archive: %w", err)
	}
	return nil
}
